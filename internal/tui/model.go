// Package tui is an interactive terminal front end for a grid session.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/render"
	"github.com/pdrpinto/gridnav/internal/session"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Model is the Bubble Tea model driving one session.
type Model struct {
	sess     *session.Session
	renderer *render.Renderer
	keys     keyMap
	help     help.Model
	cursor   gridnav.Cell
	status   string
	quitting bool
}

// New returns a model with the cursor in the top-left cell.
func New(sess *session.Session, styled bool) Model {
	return Model{
		sess:     sess,
		renderer: render.NewRenderer(styled),
		keys:     defaultKeyMap(),
		help:     help.New(),
		cursor:   gridnav.Cell{X: 0, Y: 0},
		status:   "move the cursor, then press s and e to place start and end",
	}
}

// Run blocks until the user quits.
func Run(sess *session.Session, in io.Reader, out io.Writer, styled bool) error {
	program := tea.NewProgram(New(sess, styled), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Start):
		m.report(m.sess.SetStart(m.cursor), fmt.Sprintf("start set to %s", m.cursor))
	case key.Matches(msg, m.keys.End):
		m.report(m.sess.SetEnd(m.cursor), fmt.Sprintf("end set to %s", m.cursor))
	case key.Matches(msg, m.keys.AStar):
		m.sess.SetMode(gridnav.Heuristic)
		m.status = "using A*"
	case key.Matches(msg, m.keys.Dijkstra):
		m.sess.SetMode(gridnav.Uniform)
		m.status = "using Dijkstra"
	case key.Matches(msg, m.keys.Generate):
		err := m.sess.RegenerateNext()
		m.report(err, fmt.Sprintf("generated grid from seed %d", m.sess.Seed()))
	case key.Matches(msg, m.keys.Find):
		m.find()
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	grid := m.sess.Grid()
	next := gridnav.Cell{X: m.cursor.X + dx, Y: m.cursor.Y + dy}
	if gridnav.IsWithinBounds(next, grid.Width(), grid.Height()) {
		m.cursor = next
	}
}

func (m *Model) find() {
	result, err := m.sess.FindPath()
	if err != nil {
		m.status = "error: " + err.Error()
		return
	}
	switch result.Outcome {
	case gridnav.Success:
		m.status = fmt.Sprintf("path found: %d steps, %d cells expanded", result.Cost, result.Expanded)
	case gridnav.Unreachable:
		m.status = fmt.Sprintf("no path: end unreachable (%d cells expanded)", result.Expanded)
	default:
		m.status = "no path: set start and end first"
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.status = ok
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("gridnav  mode %s  seed %d", m.sess.Mode(), m.sess.Seed())))
	b.WriteString("\n\n")
	b.WriteString(m.renderer.Grid(render.Scene{
		Grid:   m.sess.Grid(),
		Start:  m.sess.Start(),
		End:    m.sess.End(),
		Path:   m.sess.Path(),
		Cursor: m.cursor,
	}))
	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
