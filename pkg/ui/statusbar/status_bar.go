// Package statusbar renders the bottom bar and the help view.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/pgn/pkg/ui/theme"
	"github.com/macropower/pgn/pkg/version"
)

const (
	helpText  = " ? Help "
	errorText = " ! Error "

	// Dots are only drawn up to this many pages.
	maxDots = 20
)

// State is the paginator state shown in the status bar.
type State struct {
	Page    int
	MaxPage int
	Start   int // Index of the first item on the page.
	End     int // Index after the last item on the page.
	Total   int
}

// Renderer renders the status bar.
type Renderer struct {
	theme   *theme.Theme
	message string
	width   int
	isError bool
}

type Opt func(*Renderer)

// WithMessage replaces the item summary with msg.
func WithMessage(msg string) Opt {
	return func(r *Renderer) {
		r.message = msg
	}
}

// WithError replaces the item summary with msg, styled as an error.
func WithError(msg string) Opt {
	return func(r *Renderer) {
		r.message = msg
		r.isError = true
	}
}

// NewRenderer creates a new [Renderer]. Widths below the minimum that the
// fixed segments need are allowed; the bar is then wider than width.
func NewRenderer(t *theme.Theme, width int, opts ...Opt) *Renderer {
	r := &Renderer{theme: t, width: max(0, width)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render renders the complete status bar for s.
func (r *Renderer) Render(s State) string {
	logo := r.logo()
	pos := r.position(s)
	help := r.help()

	fixed := ansi.PrintableRuneWidth(logo) + ansi.PrintableRuneWidth(pos) + ansi.PrintableRuneWidth(help)

	dots := r.dots(s)
	if dots != "" && fixed+ansi.PrintableRuneWidth(dots)+2 > r.width {
		dots = ""
	}

	note := r.note(s, max(0, r.width-fixed-ansi.PrintableRuneWidth(dots)))

	used := fixed + ansi.PrintableRuneWidth(dots) + ansi.PrintableRuneWidth(note)
	fill := r.noteStyle().Render(strings.Repeat(" ", max(0, r.width-used)))

	return logo + note + fill + dots + pos + help
}

// Summary describes the items on the page, e.g. "items 11–20 of 1,000".
func Summary(s State) string {
	if s.Total == 0 {
		return "no items"
	}

	return fmt.Sprintf("items %s–%s of %s",
		humanize.Comma(int64(s.Start+1)),
		humanize.Comma(int64(s.End)),
		humanize.Comma(int64(s.Total)),
	)
}

func (r *Renderer) note(s State, width int) string {
	msg := r.message
	if msg == "" {
		msg = Summary(s)
	}

	msg = strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
	msg = truncate.StringWithTail(" "+msg+" ", uint(width), r.theme.Ellipsis) //nolint:gosec // Uses max.

	return r.noteStyle().Render(msg)
}

func (r *Renderer) position(s State) string {
	return r.theme.StatusBarPosStyle.Render(fmt.Sprintf(" page %s of %s ",
		humanize.Comma(int64(s.Page)),
		humanize.Comma(int64(s.MaxPage)),
	))
}

func (r *Renderer) dots(s State) string {
	if s.MaxPage <= 1 || s.MaxPage > maxDots {
		return ""
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = r.theme.ActivePageStyle.UnsetPadding().Render("•")
	p.InactiveDot = r.theme.SubtleStyle.Render("◦")
	p.KeyMap = paginator.KeyMap{}
	p.TotalPages = s.MaxPage
	p.Page = s.Page - 1

	return r.noteStyle().Render(" " + p.View() + " ")
}

func (r *Renderer) help() string {
	if r.isError {
		return r.theme.StatusBarErrorStyle.Render(errorText)
	}

	return r.theme.HelpStyle.Render(helpText)
}

func (r *Renderer) logo() string {
	return r.theme.LogoStyle.Render(fmt.Sprintf(" pgn %s ", version.GetVersion()))
}

func (r *Renderer) noteStyle() lipgloss.Style {
	if r.isError {
		return r.theme.StatusBarErrorStyle
	}

	return r.theme.StatusBarStyle
}
