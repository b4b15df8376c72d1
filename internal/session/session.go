// Package session holds the state a presentation layer keeps between searches:
// the current grid, the chosen endpoints, the search mode and the last result.
package session

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pdrpinto/gridnav"
)

// Config fixes the grid shape and generation parameters of a session.
type Config struct {
	Width               int
	Height              int
	ObstacleProbability float64
	Mode                gridnav.Mode
}

// DefaultConfig matches the original 15x15 window with 20% obstacles.
func DefaultConfig() Config {
	return Config{
		Width:               15,
		Height:              15,
		ObstacleProbability: gridnav.DefaultObstacleProbability,
		Mode:                gridnav.Heuristic,
	}
}

// Session is not safe for concurrent use; callers that share one must
// serialize access.
type Session struct {
	cfg    Config
	logger *slog.Logger
	rng    *rand.Rand
	seed   int64
	grid   *gridnav.Grid
	start  gridnav.Cell
	end    gridnav.Cell
	mode   gridnav.Mode
	result gridnav.Result
}

// New creates a session and generates its first grid from seed. Later
// regenerations draw their seeds from the same source.
func New(cfg Config, seed int64, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
		start:  gridnav.Unset,
		end:    gridnav.Unset,
		mode:   cfg.Mode,
	}
	if err := s.Regenerate(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Regenerate replaces the grid with a fresh one built from seed and clears
// the last path. Start and end are kept.
func (s *Session) Regenerate(seed int64) error {
	grid, err := gridnav.GenerateSeeded(s.cfg.Width, s.cfg.Height, s.cfg.ObstacleProbability, seed)
	if err != nil {
		return fmt.Errorf("regenerate session grid: %w", err)
	}
	s.grid = grid
	s.seed = seed
	s.result = gridnav.Result{}
	s.logger.Debug("grid generated", "seed", seed, "width", grid.Width(), "height", grid.Height(), "blocked", grid.BlockedCount())
	return nil
}

// RegenerateNext regenerates with the next seed from the session's source.
func (s *Session) RegenerateNext() error {
	return s.Regenerate(s.rng.Int63())
}

// SetStart chooses the start cell; Unset clears it.
func (s *Session) SetStart(cell gridnav.Cell) error {
	if err := s.checkCell(cell); err != nil {
		return fmt.Errorf("set start: %w", err)
	}
	s.start = cell
	return nil
}

// SetEnd chooses the end cell; Unset clears it.
func (s *Session) SetEnd(cell gridnav.Cell) error {
	if err := s.checkCell(cell); err != nil {
		return fmt.Errorf("set end: %w", err)
	}
	s.end = cell
	return nil
}

func (s *Session) checkCell(cell gridnav.Cell) error {
	if cell.IsSet() && !s.grid.InBounds(cell) {
		return fmt.Errorf("%s: %w", cell, gridnav.ErrOutOfBounds)
	}
	return nil
}

func (s *Session) SetMode(mode gridnav.Mode) { s.mode = mode }

// FindPath searches the current grid and keeps the result for display.
func (s *Session) FindPath(options ...gridnav.Option) (gridnav.Result, error) {
	options = append([]gridnav.Option{gridnav.WithLogger(s.logger)}, options...)
	result, err := gridnav.Search(s.grid, s.start, s.end, s.mode, options...)
	if err != nil {
		return gridnav.Result{}, err
	}
	s.result = result
	return result, nil
}

// NewStepper starts a step-by-step search over the current configuration.
func (s *Session) NewStepper() (*gridnav.Stepper, error) {
	return gridnav.NewStepper(s.grid, s.start, s.end, s.mode, gridnav.WithLogger(s.logger))
}

func (s *Session) Grid() *gridnav.Grid { return s.grid }
func (s *Session) Start() gridnav.Cell { return s.start }
func (s *Session) End() gridnav.Cell { return s.end }
func (s *Session) Mode() gridnav.Mode { return s.mode }
func (s *Session) Seed() int64 { return s.seed }
func (s *Session) Result() gridnav.Result { return s.result }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) Path() gridnav.Path { return s.result.Path }
