package cli

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/render"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate and print a random grid",
		Long: `Generate a grid where every cell is independently an obstacle with the
configured probability, and print it together with its seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			sess, err := newSession(s)
			if err != nil {
				return err
			}

			grid := sess.Grid()
			renderer := render.NewRenderer(useColor(cmd))
			cmd.Printf("seed %d, %dx%d, %d obstacles\n", sess.Seed(), grid.Width(), grid.Height(), grid.BlockedCount())
			cmd.Println(renderer.Grid(render.Scene{
				Grid:   grid,
				Start:  gridnav.Unset,
				End:    gridnav.Unset,
				Cursor: gridnav.Unset,
			}))

			return nil
		},
	}
}
