package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdrpinto/gridnav/internal/render"
	"github.com/pdrpinto/gridnav/internal/trials"
)

const (
	trialsCountFlagName    = "count"
	trialsParallelFlagName = "parallel"
)

func newTrialsCmd() *cobra.Command {
	var endpoints endpointFlags

	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Compare A* and Dijkstra over many seeded grids",
		Long: `Generate --count grids from consecutive seeds and search each with both
modes. The command fails if the modes ever disagree on path length. Without
--start/--end the opposite corners of the grid are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}

			cfg := trials.Config{
				Count:               s.TrialsCount,
				Parallel:            s.TrialsParallel,
				Width:               s.Session.Width,
				Height:              s.Session.Height,
				ObstacleProbability: s.Session.ObstacleProbability,
				BaseSeed:            s.Seed,
			}
			if cfg.Start, err = parseCell(endpoints.start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if cfg.End, err = parseCell(endpoints.end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if !cfg.Start.IsSet() {
				cfg.Start.X, cfg.Start.Y = 0, 0
			}
			if !cfg.End.IsSet() {
				cfg.End.X, cfg.End.Y = cfg.Width-1, cfg.Height-1
			}

			summary, err := trials.Run(cmd.Context(), cfg, globalLogger)
			if err != nil {
				return err
			}

			cmd.Print(renderSummary(cfg, summary))

			return nil
		},
	}

	endpoints.register(cmd)
	cmd.Flags().Int(trialsCountFlagName, viper.GetInt(trialsCountKey), "number of grids to generate")
	bindFlagToConfig(cmd.Flags().Lookup(trialsCountFlagName), trialsCountKey)
	cmd.Flags().IntP(trialsParallelFlagName, "p", viper.GetInt(trialsParallelKey), "number of concurrent trials")
	bindFlagToConfig(cmd.Flags().Lookup(trialsParallelFlagName), trialsParallelKey)

	return cmd
}

func renderSummary(cfg trials.Config, summary trials.Summary) string {
	rows := [][]string{
		{"astar", strconv.Itoa(summary.HeuristicExpanded), average(summary.HeuristicExpanded, len(summary.Trials))},
		{"dijkstra", strconv.Itoa(summary.UniformExpanded), average(summary.UniformExpanded, len(summary.Trials))},
	}
	footer := []string{
		fmt.Sprintf("%d trials", len(summary.Trials)),
		fmt.Sprintf("solved %d", summary.Solved),
		fmt.Sprintf("unreachable %d", summary.Unreachable),
	}

	header := fmt.Sprintf("%dx%d grids, obstacles %.2f, %s -> %s, seeds %d..%d\n",
		cfg.Width, cfg.Height, cfg.ObstacleProbability, cfg.Start, cfg.End,
		cfg.BaseSeed, cfg.BaseSeed+int64(len(summary.Trials))-1)

	return header + render.Table([]string{"Mode", "Expanded", "Per Trial"}, rows, footer)
}

func average(total, count int) string {
	if count == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(total)/float64(count), 'f', 1, 64)
}
