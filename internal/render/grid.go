// Package render draws grids, paths and search statistics for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdrpinto/gridnav"
)

// Glyphs used for each kind of cell.
const (
	GlyphFree    = '.'
	GlyphBlocked = '#'
	GlyphStart   = 'S'
	GlyphEnd     = 'E'
	GlyphPath    = '*'
	GlyphCursor  = '@'
)

// Palette holds the lipgloss styles applied when rendering in color.
type Palette struct {
	Free    lipgloss.Style
	Blocked lipgloss.Style
	Start   lipgloss.Style
	End     lipgloss.Style
	Path    lipgloss.Style
	Cursor  lipgloss.Style
}

// DefaultPalette follows the colors of the original window: dark obstacles,
// light free cells and blue shades for start, end and path.
func DefaultPalette() Palette {
	return Palette{
		Free:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Blocked: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Start:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		End:     lipgloss.NewStyle().Foreground(lipgloss.Color("123")).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Reverse(true),
	}
}

// Scene is everything drawn on top of a grid.
type Scene struct {
	Grid   *gridnav.Grid
	Start  gridnav.Cell
	End    gridnav.Cell
	Path   gridnav.Path
	Cursor gridnav.Cell
}

// Renderer turns scenes into text. A nil palette renders plain glyphs.
type Renderer struct {
	palette *Palette
}

// NewRenderer returns a styled renderer when styled is true.
func NewRenderer(styled bool) *Renderer {
	if !styled {
		return &Renderer{}
	}
	palette := DefaultPalette()
	return &Renderer{palette: &palette}
}

// Grid renders one line per row. Start and end are drawn over the path, and
// the cursor, when set, over everything else.
func (r *Renderer) Grid(scene Scene) string {
	grid := scene.Grid
	onPath := make(map[gridnav.Cell]bool, len(scene.Path))
	for _, cell := range scene.Path {
		onPath[cell] = true
	}

	var b strings.Builder
	for y := 0; y < grid.Height(); y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < grid.Width(); x++ {
			cell := gridnav.Cell{X: x, Y: y}
			b.WriteString(r.glyph(scene, cell, onPath[cell]))
		}
	}
	return b.String()
}

func (r *Renderer) glyph(scene Scene, cell gridnav.Cell, onPath bool) string {
	glyph, style := GlyphFree, r.style(func(p *Palette) lipgloss.Style { return p.Free })
	switch {
	case scene.Cursor.IsSet() && cell == scene.Cursor:
		glyph, style = GlyphCursor, r.style(func(p *Palette) lipgloss.Style { return p.Cursor })
	case cell == scene.Start:
		glyph, style = GlyphStart, r.style(func(p *Palette) lipgloss.Style { return p.Start })
	case cell == scene.End:
		glyph, style = GlyphEnd, r.style(func(p *Palette) lipgloss.Style { return p.End })
	case onPath:
		glyph, style = GlyphPath, r.style(func(p *Palette) lipgloss.Style { return p.Path })
	case scene.Grid.IsBlocked(cell):
		glyph, style = GlyphBlocked, r.style(func(p *Palette) lipgloss.Style { return p.Blocked })
	}
	if style == nil {
		return string(glyph)
	}
	return style.Render(string(glyph))
}

func (r *Renderer) style(pick func(*Palette) lipgloss.Style) *lipgloss.Style {
	if r.palette == nil {
		return nil
	}
	style := pick(r.palette)
	return &style
}

// Legend explains the glyphs.
func Legend() string {
	return "S start  E end  * path  # obstacle  . free"
}
