package statusbar_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/pgn/pkg/keys"
	"github.com/macropower/pgn/pkg/ui/statusbar"
	"github.com/macropower/pgn/pkg/ui/theme"
)

func TestHelpRenderer(t *testing.T) {
	t.Parallel()

	kbr := &keys.KeyBindRenderer{}
	kbr.AddColumn(
		keys.NewBind("next page", keys.New("l")),
		keys.NewBind("previous page", keys.New("h")),
	)
	kbr.AddColumn(keys.NewBind("quit", keys.New("q")))

	r := statusbar.NewHelpRenderer(theme.Default, kbr)

	out := ansi.Strip(r.Render(80))
	assert.Contains(t, out, "next page")
	assert.Contains(t, out, "quit")

	// Two rows of bindings plus vertical padding.
	assert.Equal(t, 4, r.Height(80))
	assert.Equal(t, 4, strings.Count(out, "\n")+1)
}
