package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/render"
	"github.com/pdrpinto/gridnav/internal/session"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

type endpointFlags struct {
	start string
	end   string
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "start cell as x,y")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "end cell as x,y")
}

// apply parses the endpoints and stores them on sess.
func (f *endpointFlags) apply(sess *session.Session) error {
	start, err := parseCell(f.start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := parseCell(f.end)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	if err := sess.SetStart(start); err != nil {
		return err
	}

	return sess.SetEnd(end)
}

func newFindCmd() *cobra.Command {
	var endpoints endpointFlags
	var format string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a shortest path on a generated grid",
		Long: `Generate a grid from the configured seed and search for a shortest path
between --start and --end. Unset endpoints or an unreachable end are reported,
not treated as errors.`,
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
			if err := endpoints.apply(sess); err != nil {
				return err
			}

			result, err := sess.FindPath()
			if err != nil {
				return err
			}
			globalLogger.Info("path search", "seed", sess.Seed(), "mode", sess.Mode(), "outcome", result.Outcome, "cost", result.Cost)

			return writeFindOutput(cmd, sess, format)
		},
	}

	endpoints.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, yaml or json")

	return cmd
}

func writeFindOutput(cmd *cobra.Command, sess *session.Session, format string) error {
	switch format {
	case formatText:
		result := sess.Result()
		renderer := render.NewRenderer(useColor(cmd))
		cmd.Printf("seed %d\n", sess.Seed())
		cmd.Println(renderer.Grid(render.Scene{
			Grid:   sess.Grid(),
			Start:  sess.Start(),
			End:    sess.End(),
			Path:   result.Path,
			Cursor: gridnav.Unset,
		}))
		cmd.Println(render.Legend())
		cmd.Print(render.ResultTable(sess.Mode(), result))
		if !result.Found() {
			cmd.Println(noPathMessage(result.Outcome))
		}
		return nil
	case formatYAML:
		out, err := yaml.Marshal(render.NewReport(sess))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		cmd.Print(string(out))
		return nil
	case formatJSON:
		out, err := json.MarshalIndent(render.NewReport(sess), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	return fmt.Errorf("unknown format %q", format)
}

func noPathMessage(outcome gridnav.Outcome) string {
	if outcome == gridnav.Unconfigured {
		return "no path: set both --start and --end"
	}
	return "no path: end is not reachable from start"
}
