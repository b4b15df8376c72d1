package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdrpinto/gridnav/internal/server"
)

const addrFlagName = "addr"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid sessions over HTTP",
		Long: `Start an HTTP API under /api/v1/sessions. Each session owns a grid, its
endpoints and mode, and can be searched at once or stepped one expansion at a
time.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := server.NewRouter(server.Config{
				Addr:    s.Addr,
				BaseURL: "/api",
				Controllers: []server.Controller{
					server.NewSessionController(s.Session, s.CellSize, s.Seed, globalLogger),
				},
				Logger: globalLogger,
			})

			return router.Run()
		},
	}

	cmd.Flags().String(addrFlagName, viper.GetString(serverAddrKey), "listen address")
	bindFlagToConfig(cmd.Flags().Lookup(addrFlagName), serverAddrKey)

	return cmd
}
