package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pgn/pkg/keys"
	"github.com/macropower/pgn/pkg/ui"
)

func TestConfig_EnsureDefaults(t *testing.T) {
	t.Parallel()

	cfg := &ui.Config{
		Theme: "dracula",
		KeyBinds: &ui.KeyBinds{
			Next: &keys.KeyBind{Keys: []keys.Key{keys.New("n")}},
		},
	}
	cfg.EnsureDefaults()

	assert.Equal(t, "dracula", cfg.Theme)
	require.NotNil(t, cfg.Mouse)
	assert.True(t, *cfg.Mouse)
	require.NotNil(t, cfg.LineNumbers)
	assert.False(t, *cfg.LineNumbers)

	assert.Equal(t, "next page", cfg.KeyBinds.Next.Description)
	assert.True(t, cfg.KeyBinds.Next.Match("n"))
	assert.False(t, cfg.KeyBinds.Next.Match("l"))
	assert.True(t, cfg.KeyBinds.Quit.Match("ctrl+c"))
	require.NoError(t, cfg.KeyBinds.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := ui.NewConfig()
	assert.Equal(t, "auto", cfg.Theme)
	require.NoError(t, cfg.KeyBinds.Validate())
	assert.Equal(t, "→/l", cfg.KeyBinds.Next.String())
}
