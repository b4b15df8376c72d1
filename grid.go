package gridnav

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DefaultObstacleProbability is the chance that a generated cell is blocked.
const DefaultObstacleProbability = 0.2

// MaxCells bounds width*height so every search node, at most four per cell
// plus the start, has an int32 arena index.
const MaxCells = (math.MaxInt32 - 1) / 4

var (
	ErrInvalidDimensions  = errors.New("grid dimensions must be positive and within MaxCells")
	ErrInvalidProbability = errors.New("obstacle probability must be within [0, 1]")
	ErrNilRand            = errors.New("random source is nil")
	ErrNilGrid            = errors.New("grid is nil")
	ErrOutOfBounds        = errors.New("cell is outside the grid")
)

// Cell is a grid coordinate: X is the column, Y is the row.
type Cell struct {
	X int
	Y int
}

// Unset marks a start or end cell that has not been chosen yet.
var Unset = Cell{X: -1, Y: -1}

// IsSet reports whether c is a concrete cell rather than the Unset sentinel.
func (c Cell) IsSet() bool { return c != Unset }

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// directions lists orthogonal moves in expansion order.
var directions = [4]Cell{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Grid is a rectangular occupancy map. A search only reads it.
type Grid struct {
	width   int
	height  int
	blocked []bool
}

// NewGrid returns an all-free grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Grid{width: width, height: height, blocked: make([]bool, width*height)}, nil
}

// Generate builds a fresh grid where each cell is independently blocked with
// probability obstacleProbability. Start and end cells are not protected and
// the result may be disconnected.
func Generate(width, height int, obstacleProbability float64, rng *rand.Rand) (*Grid, error) {
	if math.IsNaN(obstacleProbability) || obstacleProbability < 0 || obstacleProbability > 1 {
		return nil, fmt.Errorf("generate grid with p=%v: %w", obstacleProbability, ErrInvalidProbability)
	}
	if rng == nil {
		return nil, fmt.Errorf("generate grid: %w", ErrNilRand)
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.blocked {
		g.blocked[i] = rng.Float64() < obstacleProbability
	}
	return g, nil
}

// GenerateSeeded is Generate with a deterministic source derived from seed.
func GenerateSeeded(width, height int, obstacleProbability float64, seed int64) (*Grid, error) {
	return Generate(width, height, obstacleProbability, rand.New(rand.NewSource(seed)))
}

// IsWithinBounds reports whether cell lies inside a width x height grid.
func IsWithinBounds(cell Cell, width, height int) bool {
	return cell.X >= 0 && cell.X < width && cell.Y >= 0 && cell.Y < height
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether cell lies inside g.
func (g *Grid) InBounds(cell Cell) bool {
	return IsWithinBounds(cell, g.width, g.height)
}

// IsFree is false for blocked and out-of-bounds cells.
func (g *Grid) IsFree(cell Cell) bool {
	return g.InBounds(cell) && !g.blocked[g.index(cell)]
}

// IsBlocked reports whether an in-bounds cell is an obstacle.
func (g *Grid) IsBlocked(cell Cell) bool {
	return g.InBounds(cell) && g.blocked[g.index(cell)]
}

// Block marks cell as an obstacle. It must not be called while a search
// over g is running.
func (g *Grid) Block(cell Cell) error {
	if !g.InBounds(cell) {
		return fmt.Errorf("block %s: %w", cell, ErrOutOfBounds)
	}
	g.blocked[g.index(cell)] = true
	return nil
}

// BlockedCount returns the number of obstacle cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// Neighbors returns the free orthogonal neighbors of cell in expansion order.
func (g *Grid) Neighbors(cell Cell) []Cell {
	out := make([]Cell, 0, len(directions))
	for _, d := range directions {
		next := Cell{X: cell.X + d.X, Y: cell.Y + d.Y}
		if g.IsFree(next) {
			out = append(out, next)
		}
	}
	return out
}

func (g *Grid) index(cell Cell) int { return cell.Y*g.width + cell.X }
