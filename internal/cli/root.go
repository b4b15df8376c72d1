// Package cli provides the root command and CLI setup for gridnav.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/session"
)

// verboseFlag switches logging to debug level.
var verboseFlag bool

// logFileFlag overrides the configured log file.
var logFileFlag string

const rootLongDescription = `gridnav computes shortest paths between two cells of a randomly generated
occupancy grid, using either A* (Manhattan heuristic) or Dijkstra.

Moves are 4-directional with unit cost. Grids are regenerated from a seed, so
any run can be reproduced with --seed.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gridnav",
		Short:         "Shortest paths on occupancy grids",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)
	cmd.AddCommand(
		newGenerateCmd(),
		newFindCmd(),
		newStepCmd(),
		newTrialsCmd(),
		newServeCmd(),
		newTUICmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.Int(widthFlagName, viper.GetInt(gridWidthKey), "grid width in cells")
	bindFlagToConfig(flags.Lookup(widthFlagName), gridWidthKey)

	flags.Int(heightFlagName, viper.GetInt(gridHeightKey), "grid height in cells")
	bindFlagToConfig(flags.Lookup(heightFlagName), gridHeightKey)

	flags.Float64(obstaclesFlagName, viper.GetFloat64(gridObstaclesKey), "probability that a cell is an obstacle")
	bindFlagToConfig(flags.Lookup(obstaclesFlagName), gridObstaclesKey)

	flags.Int64(seedFlagName, viper.GetInt64(gridSeedKey), "grid seed (0 picks one from the clock)")
	bindFlagToConfig(flags.Lookup(seedFlagName), gridSeedKey)

	flags.StringP(modeFlagName, "m", viper.GetString(searchModeKey), "search mode: astar or dijkstra")
	bindFlagToConfig(flags.Lookup(modeFlagName), searchModeKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	flags.StringVar(&logFileFlag, logFileFlagName, "", "log file (default from log.filename)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute builds the command tree and runs it. It is called by main.main().
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func newSession(s settings) (*session.Session, error) {
	return session.New(s.Session, s.Seed, globalLogger)
}

// parseCell reads "x,y". An empty value means the cell is not set.
func parseCell(value string) (gridnav.Cell, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return gridnav.Unset, nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return gridnav.Unset, fmt.Errorf("cell %q: want x,y", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return gridnav.Unset, fmt.Errorf("cell %q: %w", value, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return gridnav.Unset, fmt.Errorf("cell %q: %w", value, err)
	}

	return gridnav.Cell{X: x, Y: y}, nil
}

// useColor is true when color is enabled and output goes to a terminal.
func useColor(cmd *cobra.Command) bool {
	if !viper.GetBool(renderColorKey) {
		return false
	}

	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
