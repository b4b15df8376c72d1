package cli

import (
	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/render"
)

func newStepCmd() *cobra.Command {
	var endpoints endpointFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Trace a search one expansion at a time",
		Long: `Run the search step by step and print the frontier and finalized counts
after every expansion, then the final grid.`,
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

			stepper, err := sess.NewStepper()
			if err != nil {
				return err
			}

			var snapshot gridnav.StepSnapshot
			for !stepper.Done() && (limit <= 0 || snapshot.StepIndex < limit) {
				snapshot = stepper.Step()
				cmd.Printf("step %d current %s frontier %d finalized %d\n",
					snapshot.StepIndex, snapshot.Current, len(snapshot.Frontier), len(snapshot.Finalized))
			}

			renderer := render.NewRenderer(useColor(cmd))
			cmd.Println(renderer.Grid(render.Scene{
				Grid:   sess.Grid(),
				Start:  sess.Start(),
				End:    sess.End(),
				Path:   snapshot.Path,
				Cursor: gridnav.Unset,
			}))
			cmd.Print(render.ResultTable(sess.Mode(), stepper.Result()))

			return nil
		},
	}

	endpoints.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many steps (0 = until done)")

	return cmd
}
