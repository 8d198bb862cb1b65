package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conceptflow/conceptflow/pkg/graph"
	"github.com/conceptflow/conceptflow/pkg/highlight"
	"github.com/conceptflow/conceptflow/pkg/reveal"
	"github.com/conceptflow/conceptflow/pkg/scene"
)

// Player styles
var (
	playerChunkStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	playerConceptStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	playerAssessmentStyle = lipgloss.NewStyle().Foreground(colorYellow)
	playerHiddenStyle     = lipgloss.NewStyle().Foreground(colorDim)
	playerHighlightStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	playerDimmedStyle     = lipgloss.NewStyle().Foreground(colorDim).Faint(true)
)

// =============================================================================
// PlayerModel - Live reveal playback
// =============================================================================

// frameMsg carries a consistent snapshot of the scene taken on an engine
// frame. The model never touches the scene directly, so playback stays
// race-free while the pipeline animates.
type frameMsg struct {
	rows       []playerRow
	edgesShown int
	edgesTotal int
}

// playDoneMsg signals that the pipeline goroutine finished.
type playDoneMsg struct {
	err error
}

type playerRow struct {
	depth int
	cells []playerCell
}

type playerCell struct {
	nodeType    string
	opacity     float64
	highlighted bool
	dimmed      bool
}

// PlayerModel is the bubbletea model displaying the staged reveal.
type PlayerModel struct {
	ctrl *reveal.Controller

	rows       []playerRow
	edgesShown int
	edgesTotal int

	stopping bool
	done     bool
	err      error
}

// NewPlayerModel creates a player model bound to a reveal controller.
func NewPlayerModel(ctrl *reveal.Controller) PlayerModel {
	return PlayerModel{ctrl: ctrl}
}

func (m PlayerModel) Init() tea.Cmd {
	return nil
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			if m.done || m.stopping {
				return m, nil
			}
			m.stopping = true
			ctrl := m.ctrl
			return m, func() tea.Msg {
				ctrl.Stop()
				return playDoneMsg{}
			}
		}
	case frameMsg:
		m.rows = msg.rows
		m.edgesShown = msg.edgesShown
		m.edgesTotal = msg.edgesTotal
	case playDoneMsg:
		m.done = true
		if msg.err != nil {
			m.err = msg.err
		}
	}
	return m, nil
}

func (m PlayerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Reveal"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.statusLine()))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(StyleDim.Render(fmt.Sprintf("depth %d  ", row.depth)))
		for _, c := range row.cells {
			b.WriteString(renderCell(c))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(edgeBar(m.edgesShown, m.edgesTotal))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	b.WriteString(StyleDim.Render("s stop · q quit"))
	b.WriteString("\n")

	return b.String()
}

// statusLine reports the pipeline stage, or the terminal outcome.
func (m PlayerModel) statusLine() string {
	switch {
	case m.err != nil:
		return "failed"
	case m.stopping && !m.done:
		return "stopping"
	case m.done:
		return "complete"
	default:
		return strings.ToLower(m.ctrl.State().String())
	}
}

// renderCell picks a glyph for the node type and a style for its current
// visual state. Invisible nodes render as a dim placeholder so rows keep
// their shape while the reveal runs.
func renderCell(c playerCell) string {
	if c.opacity <= 0 {
		return playerHiddenStyle.Render("·")
	}

	glyph := "●"
	style := playerConceptStyle
	switch c.nodeType {
	case graph.NodeTypeChunk:
		glyph = "■"
		style = playerChunkStyle
	case graph.NodeTypeAssessment:
		glyph = "◆"
		style = playerAssessmentStyle
	}

	switch {
	case c.highlighted:
		style = playerHighlightStyle
	case c.dimmed:
		style = playerDimmedStyle
	case c.opacity < 0.6:
		style = style.Faint(true)
	}
	return style.Render(glyph)
}

// edgeBar renders edge reveal progress as a fixed-width bar.
func edgeBar(shown, total int) string {
	const width = 20
	filled := 0
	if total > 0 {
		filled = shown * width / total
	}
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return "  " + StyleHighlight.Render(bar) + StyleDim.Render(fmt.Sprintf(" edges %d/%d", shown, total))
}

// =============================================================================
// Scene snapshots
// =============================================================================

// snapshotFrame captures the scene state for one animation frame. It is
// called from the engine's frame hook, so the scene is stable for the
// duration of the call.
func snapshotFrame(scn *scene.Scene) frameMsg {
	byDepth := make(map[int][]*scene.NodeElement)
	for _, n := range scn.Nodes() {
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}

	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)

	msg := frameMsg{rows: make([]playerRow, 0, len(depths))}
	for _, d := range depths {
		nodes := byDepth[d]
		sort.SliceStable(nodes, func(i, j int) bool {
			if nodes[i].InitialPos == nil || nodes[j].InitialPos == nil {
				return false
			}
			return nodes[i].InitialPos.X < nodes[j].InitialPos.X
		})

		row := playerRow{depth: d, cells: make([]playerCell, 0, len(nodes))}
		for _, n := range nodes {
			row.cells = append(row.cells, playerCell{
				nodeType:    n.Type,
				opacity:     n.Opacity,
				highlighted: n.HasClass(highlight.ClassHighlighted) || n.HasClass(highlight.ClassHover),
				dimmed:      n.HasClass(highlight.ClassDimmed),
			})
		}
		msg.rows = append(msg.rows, row)
	}

	msg.edgesTotal = scn.EdgeCount()
	for _, e := range scn.Edges() {
		if e.Opacity > 0 {
			msg.edgesShown++
		}
	}
	return msg
}
