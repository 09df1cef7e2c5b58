package keys_test

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pgn/pkg/keys"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts []keys.KeyOpt
		want keys.Key
	}{
		"plain":  {want: keys.Key{Code: "right"}},
		"alias":  {opts: []keys.KeyOpt{keys.WithAlias("→")}, want: keys.Key{Code: "right", Alias: "→"}},
		"hidden": {opts: []keys.KeyOpt{keys.Hidden()}, want: keys.Key{Code: "right", Hidden: true}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, keys.New("right", tc.opts...))
		})
	}
}

func TestKeyBind_String(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("next page",
		keys.New("right", keys.WithAlias("→")),
		keys.New("l"),
		keys.New("pgdown", keys.Hidden()),
	)
	assert.Equal(t, "→/l", kb.String())

	hidden := keys.NewBind("secret", keys.New("x", keys.Hidden()))
	assert.Empty(t, hidden.String())
	assert.Empty(t, hidden.StringRow(4, 20))
}

func TestKeyBind_Match(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("quit", keys.New("q"), keys.New("ctrl+c", keys.Hidden()))
	assert.True(t, kb.Match("q"))
	assert.True(t, kb.Match("ctrl+c"))
	assert.False(t, kb.Match("Q"))

	var nilBind *keys.KeyBind
	assert.False(t, nilBind.Match("q"))
}

func TestKeyBind_AddKey(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("quit", keys.New("q"))
	kb.AddKey(keys.New("ctrl+c", keys.Hidden()))
	kb.AddKey(keys.New("q", keys.WithAlias("Q")))

	assert.Equal(t, []keys.Key{keys.New("q"), keys.New("ctrl+c", keys.Hidden())}, kb.Keys)

	var nilBind *keys.KeyBind
	assert.NotPanics(t, func() { nilBind.AddKey(keys.New("x")) })
}

func TestKeyBind_StringRow(t *testing.T) {
	t.Parallel()

	kb := keys.NewBind("first page", keys.New("home"), keys.New("g"))

	row := kb.StringRow(8, 14)
	assert.Equal(t, "home/g    first page  ", row)
	assert.Equal(t, 8+14, ansi.PrintableRuneWidth(row))

	truncated := kb.StringRow(6, 8)
	assert.True(t, strings.HasSuffix(truncated, "…"), truncated)
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(truncated), 6+8)
}

func TestKeyBindRenderer_Render(t *testing.T) {
	t.Parallel()

	kbr := &keys.KeyBindRenderer{}
	assert.Empty(t, kbr.Render(80))

	kbr.AddColumn()
	kbr.AddColumn(
		keys.NewBind("next page", keys.New("l")),
		keys.NewBind("previous page", keys.New("h")),
	)
	kbr.AddColumn(keys.NewBind("quit", keys.New("q")))

	out := kbr.Render(60)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "next page")
	assert.Contains(t, lines[0], "quit")
	assert.Contains(t, lines[1], "previous page")

	for _, line := range lines {
		assert.Equal(t, 60, ansi.PrintableRuneWidth(line))
	}
}

func TestValidateBinds(t *testing.T) {
	t.Parallel()

	a := keys.NewBind("next", keys.New("l"), keys.New("right"))
	b := keys.NewBind("prev", keys.New("h"), keys.New("left"))
	c := keys.NewBind("last", keys.New("l"))

	require.NoError(t, keys.ValidateBinds(&a, &b, nil))

	err := keys.ValidateBinds(&a, &b, &c)
	require.ErrorIs(t, err, keys.ErrDuplicateKey)
	assert.Contains(t, err.Error(), `"l" used by "next" and "last"`)
}

func TestSetDefaultBind(t *testing.T) {
	t.Parallel()

	def := keys.NewBind("quit", keys.New("q"))

	var unset *keys.KeyBind
	keys.SetDefaultBind(&unset, def)
	require.NotNil(t, unset)
	assert.Equal(t, def, *unset)

	partial := &keys.KeyBind{Keys: []keys.Key{keys.New("x")}}
	keys.SetDefaultBind(&partial, def)
	assert.Equal(t, "quit", partial.Description)
	assert.Equal(t, []keys.Key{keys.New("x")}, partial.Keys)

	empty := &keys.KeyBind{Description: "leave"}
	keys.SetDefaultBind(&empty, def)
	assert.Equal(t, "leave", empty.Description)
	assert.Equal(t, def.Keys, empty.Keys)
}
