package uitest

import tea "github.com/charmbracelet/bubbletea"

// Size is a terminal size.
type Size struct {
	Width  int
	Height int
}

// Msg returns the [tea.WindowSizeMsg] for s.
func (s Size) Msg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: s.Width, Height: s.Height}
}

const (
	// CompactWidth and CompactHeight are the classic 80x24 terminal.
	CompactWidth  = 80
	CompactHeight = 24

	// NarrowWidth is too narrow for the full navigation strip of most
	// sources, so buttons are dropped from the right.
	NarrowWidth  = 20
	NarrowHeight = 12

	WideWidth  = 160
	WideHeight = 50
)

var (
	Compact = Size{CompactWidth, CompactHeight}
	Narrow  = Size{NarrowWidth, NarrowHeight}
	Wide    = Size{WideWidth, WideHeight}
)
