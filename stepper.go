package gridnav

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Cell
	Frontier  []Cell
	Finalized []Cell
	Done      bool
	Found     bool
	Path      Path
	StepIndex int
}

// Stepper advances a search one finalized cell at a time, for UIs and debugging.
// It runs the same orchestration as Search, so a stepper driven to completion
// yields the same path.
type Stepper struct {
	state     *searchState
	current   Cell
	stepCount int
}

// NewStepper validates its inputs like Search. Unset endpoints produce a
// stepper that is already done.
func NewStepper(grid *Grid, start, end Cell, mode Mode, options ...Option) (*Stepper, error) {
	if err := validate(grid, start, end, mode); err != nil {
		return nil, err
	}
	s := &Stepper{current: Unset}
	if start.IsSet() && end.IsSet() {
		s.state = newSearchState(grid, start, end, mode, applyOptions(options))
	}
	return s, nil
}

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool { return s.state == nil || s.state.done }

// Step advances the search by one node expansion and returns a snapshot
func (s *Stepper) Step() StepSnapshot {
	if s.state == nil {
		return StepSnapshot{Current: Unset, Done: true}
	}
	if !s.state.done {
		if cell, ok := s.state.step(); ok {
			s.stepCount++
			s.current = cell
		}
	}
	return s.snapshot()
}

// Result returns the outcome so far; it is final once Done is true.
func (s *Stepper) Result() Result {
	if s.state == nil {
		return Result{Outcome: Unconfigured}
	}
	return s.state.result()
}

func (s *Stepper) snapshot() StepSnapshot {
	state := s.state
	return StepSnapshot{
		Current:   s.current,
		Frontier:  s.frontierCells(),
		Finalized: s.finalizedCells(),
		Done:      state.done,
		Found:     state.found,
		Path:      state.path(),
		StepIndex: s.stepCount,
	}
}

// frontierCells lists distinct cells with a live frontier entry, in row-major order.
func (s *Stepper) frontierCells() []Cell {
	state := s.state
	seen := make([]bool, len(state.finalized))
	for _, item := range state.open {
		index := state.grid.index(state.nodes[item.Node].Cell)
		if !state.finalized[index] {
			seen[index] = true
		}
	}
	return cellsOf(state.grid, seen)
}

func (s *Stepper) finalizedCells() []Cell {
	return cellsOf(s.state.grid, s.state.finalized)
}

func cellsOf(grid *Grid, marks []bool) []Cell {
	var cells []Cell
	for index, marked := range marks {
		if marked {
			cells = append(cells, Cell{X: index % grid.width, Y: index / grid.width})
		}
	}
	return cells
}
