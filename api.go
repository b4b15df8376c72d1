package gridnav

import (
	"container/heap"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdrpinto/gridnav/internal"
)

var ErrUnknownMode = errors.New("unknown search mode")

// Mode selects how the frontier is ordered.
type Mode int

const (
	// Heuristic orders the frontier by cost plus Manhattan distance (A*).
	Heuristic Mode = iota
	// Uniform orders the frontier by cost alone (Dijkstra).
	Uniform
)

func (mode Mode) String() string {
	switch mode {
	case Heuristic:
		return "astar"
	case Uniform:
		return "dijkstra"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// ParseMode accepts "astar", "a*", "heuristic", "dijkstra" and "uniform".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "astar", "a*", "heuristic":
		return Heuristic, nil
	case "dijkstra", "uniform":
		return Uniform, nil
	}
	return Heuristic, fmt.Errorf("parse mode %q: %w", value, ErrUnknownMode)
}

func (mode Mode) MarshalText() ([]byte, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("marshal %s: %w", mode, ErrUnknownMode)
	}
	return []byte(mode.String()), nil
}

func (mode *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}

func (mode Mode) valid() bool { return mode == Heuristic || mode == Uniform }

// Outcome classifies a finished search.
type Outcome int

const (
	// Unconfigured means start or end was Unset and no search ran.
	Unconfigured Outcome = iota
	// Unreachable means the frontier ran out before the goal was popped.
	Unreachable
	// Success means a path was found.
	Success
)

func (outcome Outcome) String() string {
	switch outcome {
	case Unconfigured:
		return "unconfigured"
	case Unreachable:
		return "unreachable"
	case Success:
		return "success"
	}
	return fmt.Sprintf("Outcome(%d)", int(outcome))
}

func (outcome Outcome) MarshalText() ([]byte, error) { return []byte(outcome.String()), nil }

// Path is an ordered start-to-end sequence of cells, empty when no path exists.
type Path []Cell

// Result contains the outcome of a search
type Result struct {
	Path      Path
	Cost      int
	Expanded  int
	Generated int
	Outcome   Outcome
}

// Found reports whether the search reached the goal.
func (result Result) Found() bool { return result.Outcome == Success }

// Options defines parameters for the search.
type Options struct {
	Logger     *slog.Logger
	ExpandHook func(Cell)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for debug events of a search.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithExpandHook registers a callback invoked each time a cell is finalized.
func WithExpandHook(hook func(Cell)) Option {
	return func(options *Options) { options.ExpandHook = hook }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return searchOptions
}

// FindPath returns the shortest path from start to end, or an empty path when
// either endpoint is Unset or end cannot be reached.
func FindPath(grid *Grid, start, end Cell, mode Mode, options ...Option) (Path, error) {
	result, err := Search(grid, start, end, mode, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// Search runs the best-first search to completion.
//
// Equal priorities are popped in insertion order. Cells are never
// re-prioritized: every admissible neighbor gets a new frontier entry and
// stale entries are dropped when popped.
func Search(grid *Grid, start, end Cell, mode Mode, options ...Option) (Result, error) {
	if err := validate(grid, start, end, mode); err != nil {
		return Result{}, err
	}
	searchOptions := applyOptions(options)
	if !start.IsSet() || !end.IsSet() {
		searchOptions.Logger.Debug("search skipped", "start", start, "end", end)
		return Result{Outcome: Unconfigured}, nil
	}

	state := newSearchState(grid, start, end, mode, searchOptions)
	for !state.done {
		state.step()
	}
	return state.result(), nil
}

func validate(grid *Grid, start, end Cell, mode Mode) error {
	if grid == nil {
		return ErrNilGrid
	}
	if !mode.valid() {
		return fmt.Errorf("search: %w", ErrUnknownMode)
	}
	for _, cell := range []Cell{start, end} {
		if cell.IsSet() && !grid.InBounds(cell) {
			return fmt.Errorf("search endpoint %s in %dx%d grid: %w", cell, grid.width, grid.height, ErrOutOfBounds)
		}
	}
	return nil
}

// searchState is the orchestrator state shared by Search and Stepper.
type searchState struct {
	grid      *Grid
	start     Cell
	goal      Cell
	mode      Mode
	hook      func(Cell)
	logger    *slog.Logger
	nodes     []searchNode
	open      frontier
	seq       uint64
	finalized []bool
	expanded  int
	goalNode  int32
	done      bool
	found     bool
}

func newSearchState(grid *Grid, start, goal Cell, mode Mode, options Options) *searchState {
	state := &searchState{
		grid:      grid,
		start:     start,
		goal:      goal,
		mode:      mode,
		hook:      options.ExpandHook,
		logger:    options.Logger,
		open:      make(frontier, 0),
		finalized: make([]bool, grid.width*grid.height),
		goalNode:  noParent,
	}
	heap.Init(&state.open)
	state.push(start, 0, noParent)
	return state
}

func (state *searchState) heuristic(cell Cell) int {
	if state.mode == Uniform {
		return 0
	}
	return manhattan(cell, state.goal)
}

func (state *searchState) push(cell Cell, cost int, parent int32) {
	node := searchNode{Cell: cell, Cost: cost, Heuristic: state.heuristic(cell), Parent: parent}
	state.nodes = append(state.nodes, node)
	heap.Push(&state.open, frontierItem{
		Node:     int32(len(state.nodes) - 1),
		Priority: node.priority(),
		Seq:      state.seq,
	})
	state.seq++
}

// step pops entries until one cell is finalized, the goal is popped, or the
// frontier is exhausted. It returns the popped cell and whether one was.
func (state *searchState) step() (Cell, bool) {
	for state.open.Len() > 0 {
		item := heap.Pop(&state.open).(frontierItem)
		current := state.nodes[item.Node]

		// Goal check
		if current.Cell == state.goal {
			state.found = true
			state.goalNode = item.Node
			state.finish()
			return current.Cell, true
		}

		index := state.grid.index(current.Cell)
		if state.finalized[index] {
			continue
		}
		state.finalized[index] = true
		state.expanded++
		if state.hook != nil {
			state.hook(current.Cell)
		}

		for _, next := range state.grid.Neighbors(current.Cell) {
			if !state.finalized[state.grid.index(next)] {
				state.push(next, current.Cost+1, item.Node)
			}
		}
		return current.Cell, true
	}
	state.finish()
	return Cell{}, false
}

// finish marks the search done and logs its result once.
func (state *searchState) finish() {
	state.done = true
	result := state.result()
	state.logger.Debug("search finished",
		"mode", state.mode,
		"start", state.start,
		"end", state.goal,
		"outcome", result.Outcome,
		"cost", result.Cost,
		"expanded", result.Expanded,
		"generated", result.Generated,
	)
}

func (state *searchState) path() Path {
	if !state.found {
		return nil
	}
	return internal.ReconstructPath(state.nodes, state.goalNode, func(node searchNode) (Cell, int32) {
		return node.Cell, node.Parent
	})
}

func (state *searchState) result() Result {
	result := Result{
		Expanded:  state.expanded,
		Generated: len(state.nodes),
		Outcome:   Unreachable,
	}
	if state.found {
		result.Path = state.path()
		result.Cost = state.nodes[state.goalNode].Cost
		result.Outcome = Success
	}
	return result
}
