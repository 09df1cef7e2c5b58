package uitest

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds how long helpers wait for output.
const DefaultTimeout = 3 * time.Second

// NewTestModel starts m in a teatest program with the given terminal size.
func NewTestModel(tb testing.TB, m tea.Model, size Size) *teatest.TestModel {
	tb.Helper()

	return teatest.NewTestModel(tb, m, teatest.WithInitialTermSize(size.Width, size.Height))
}

// WaitForText waits until the output, with ANSI sequences removed, contains
// text.
func WaitForText(tb testing.TB, r io.Reader, text string) {
	tb.Helper()

	teatest.WaitFor(tb, r, func(b []byte) bool {
		return bytes.Contains([]byte(ansi.Strip(string(b))), []byte(text))
	}, teatest.WithDuration(DefaultTimeout))
}

// Quit presses "q" and returns the final model.
//
//nolint:ireturn // Returns whatever model the program ended with.
func Quit(tb testing.TB, tm *teatest.TestModel) tea.Model {
	tb.Helper()

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	return tm.FinalModel(tb, teatest.WithFinalTimeout(DefaultTimeout))
}

// PlainView returns the view of m with ANSI sequences removed.
func PlainView(m tea.Model) string {
	return ansi.Strip(m.View())
}
