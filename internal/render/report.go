package render

import (
	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/session"
)

// Point is the wire form of a cell.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Report is the serializable view of a session and its last search.
type Report struct {
	Seed      int64   `json:"seed" yaml:"seed"`
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	CellSize  int     `json:"cell_size,omitempty" yaml:"cell_size,omitempty"`
	Blocked   []Point `json:"blocked" yaml:"blocked,flow"`
	Start     *Point  `json:"start" yaml:"start"`
	End       *Point  `json:"end" yaml:"end"`
	Mode      string  `json:"mode" yaml:"mode"`
	Outcome   string  `json:"outcome" yaml:"outcome"`
	Cost      int     `json:"cost" yaml:"cost"`
	Expanded  int     `json:"expanded" yaml:"expanded"`
	Generated int     `json:"generated" yaml:"generated"`
	Path      []Point `json:"path" yaml:"path,flow"`
}

// NewReport captures the current state of s. Unset endpoints become nil.
func NewReport(s *session.Session) Report {
	grid := s.Grid()
	result := s.Result()

	report := Report{
		Seed:      s.Seed(),
		Width:     grid.Width(),
		Height:    grid.Height(),
		Blocked:   []Point{},
		Start:     optionalPoint(s.Start()),
		End:       optionalPoint(s.End()),
		Mode:      s.Mode().String(),
		Outcome:   result.Outcome.String(),
		Cost:      result.Cost,
		Expanded:  result.Expanded,
		Generated: result.Generated,
		Path:      Points(result.Path),
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.IsBlocked(gridnav.Cell{X: x, Y: y}) {
				report.Blocked = append(report.Blocked, Point{X: x, Y: y})
			}
		}
	}

	return report
}

// Points converts cells to their wire form; the result is never nil.
func Points(cells []gridnav.Cell) []Point {
	points := make([]Point, 0, len(cells))
	for _, cell := range cells {
		points = append(points, Point{X: cell.X, Y: cell.Y})
	}
	return points
}

func optionalPoint(cell gridnav.Cell) *Point {
	if !cell.IsSet() {
		return nil
	}
	return &Point{X: cell.X, Y: cell.Y}
}
