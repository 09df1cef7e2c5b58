// Package strip renders paginator output for a terminal.
package strip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/ui/theme"
)

// span is the half-open column range [start, end) occupied by a button.
type span struct {
	start, end int
}

// Renderer is a [paginator.NavSink] that draws the navigation buttons on a
// single line. It remembers where each button was drawn so that a mouse
// column can be resolved back to a button.
type Renderer struct {
	theme   *theme.Theme
	buttons []paginator.Button
	spans   []span
	focus   int
	width   int
	line    string
}

// NewRenderer creates a new [Renderer].
func NewRenderer(t *theme.Theme, width int) *Renderer {
	return &Renderer{theme: t, width: width, focus: -1}
}

// SetButtons implements [paginator.NavSink]. Focus moves to the active
// button.
func (r *Renderer) SetButtons(buttons []paginator.Button) {
	r.buttons = buttons
	r.focus = -1

	for i, b := range buttons {
		if b.Active {
			r.focus = i

			break
		}
	}

	r.layout()
}

// SetWidth sets the available width in columns.
func (r *Renderer) SetWidth(width int) {
	r.width = width
	r.layout()
}

// Buttons returns the buttons currently drawn.
func (r *Renderer) Buttons() []paginator.Button {
	return r.buttons
}

// Focused returns the focused button. Buttons cut off by the width are
// never focused.
func (r *Renderer) Focused() (paginator.Button, bool) {
	if r.focus < 0 || r.focus >= len(r.spans) {
		return paginator.Button{}, false
	}

	return r.buttons[r.focus], true
}

// FocusNext moves focus one button to the right, stopping at the end.
func (r *Renderer) FocusNext() {
	r.moveFocus(1)
}

// FocusPrev moves focus one button to the left, stopping at the start.
func (r *Renderer) FocusPrev() {
	r.moveFocus(-1)
}

// moveFocus only reaches drawn buttons. A focus left beyond them by a
// narrower width re-enters at the last drawn button.
func (r *Renderer) moveFocus(delta int) {
	n := len(r.spans)
	if n == 0 {
		return
	}

	r.focus = max(0, min(n-1, min(r.focus, n)+delta))
	r.layout()
}

// ButtonAt returns the button drawn at column x.
func (r *Renderer) ButtonAt(x int) (paginator.Button, bool) {
	for i, s := range r.spans {
		if x >= s.start && x < s.end {
			return r.buttons[i], true
		}
	}

	return paginator.Button{}, false
}

// View returns the rendered line.
func (r *Renderer) View() string {
	return r.line
}

func (r *Renderer) layout() {
	r.spans = r.spans[:0]

	var sb strings.Builder

	col := 0
	for i, b := range r.buttons {
		cell := r.style(i, b).Render(b.Label)
		w := ansi.PrintableRuneWidth(cell)

		if r.width > 0 && col+w > r.width {
			break
		}

		r.spans = append(r.spans, span{start: col, end: col + w})
		sb.WriteString(cell)

		col += w
	}

	r.line = sb.String()
}

func (r *Renderer) style(i int, b paginator.Button) lipgloss.Style {
	switch {
	case i == r.focus && !b.Active:
		return r.theme.FocusStyle
	case b.Active:
		return r.theme.ActivePageStyle
	case b.Kind == paginator.KindNumber:
		return r.theme.PageStyle
	default:
		return r.theme.NavStyle
	}
}

// Items is a [paginator.ItemSink] that keeps the items on the current page
// as lines of text.
type Items struct {
	theme *theme.Theme
	items []string
}

// NewItems creates a new [Items].
func NewItems(t *theme.Theme) *Items {
	return &Items{theme: t}
}

// SetItems implements [paginator.ItemSink].
func (it *Items) SetItems(items []string) {
	it.items = items
}

// Len returns the number of items held.
func (it *Items) Len() int {
	return len(it.items)
}

// View renders at most height items, each truncated to width. A height of
// zero or less renders all items.
func (it *Items) View(width, height int) string {
	return it.view(width, height, -1)
}

// ViewNumbered is like [Items.View], but prefixes each item with its
// one-based position, counting from the absolute index first.
func (it *Items) ViewNumbered(width, height, first int) string {
	return it.view(width, height, first)
}

func (it *Items) view(width, height, first int) string {
	n := len(it.items)
	if height > 0 {
		n = min(n, height)
	}

	gutter := 0
	if first >= 0 {
		gutter = len(strconv.Itoa(first+n)) + 1
	}

	lines := make([]string, 0, n)
	for i, item := range it.items[:n] {
		item = strings.ReplaceAll(item, "\t", "    ")

		w := width - gutter
		if width > 0 && ansi.PrintableRuneWidth(item) > w {
			item = truncate.StringWithTail(item, uint(max(0, w)), it.theme.Ellipsis) //nolint:gosec // Uses max.
		}

		line := it.theme.ItemStyle.Render(item)
		if first >= 0 {
			num := fmt.Sprintf("%*d ", gutter-1, first+i+1)
			line = it.theme.LineNumberStyle.Render(num) + line
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

var (
	_ paginator.NavSink  = (*Renderer)(nil)
	_ paginator.ItemSink = (*Items)(nil)
)
