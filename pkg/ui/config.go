package ui

import (
	"github.com/macropower/pgn/pkg/keys"
)

// Config contains TUI-specific configuration.
type Config struct {
	// Mouse enables mouse clicks on the navigation strip.
	Mouse *bool `json:"mouse,omitempty" jsonschema:"title=Mouse"`
	// KeyBinds customizes the key bindings.
	KeyBinds *KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Binds"`
	// Theme is the name of a chroma style, or one of "auto", "dark", "light".
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
	// LineNumbers prefixes each item with its absolute position.
	LineNumbers *bool `json:"lineNumbers,omitempty" jsonschema:"title=Line Numbers"`
}

// NewConfig returns a [Config] with all defaults set.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.Mouse == nil {
		c.Mouse = new(bool)
		*c.Mouse = true
	}
	if c.LineNumbers == nil {
		c.LineNumbers = new(bool)
	}
	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// KeyBinds are the key bindings of the TUI.
type KeyBinds struct {
	Quit *keys.KeyBind `json:"quit,omitempty"`
	Help *keys.KeyBind `json:"help,omitempty"`

	// Pages.
	Next  *keys.KeyBind `json:"next,omitempty"`
	Prev  *keys.KeyBind `json:"prev,omitempty"`
	First *keys.KeyBind `json:"first,omitempty"`
	Last  *keys.KeyBind `json:"last,omitempty"`

	// Windows.
	NextWindow *keys.KeyBind `json:"nextWindow,omitempty"`
	PrevWindow *keys.KeyBind `json:"prevWindow,omitempty"`

	// Buttons.
	FocusLeft  *keys.KeyBind `json:"focusLeft,omitempty"`
	FocusRight *keys.KeyBind `json:"focusRight,omitempty"`
	Click      *keys.KeyBind `json:"click,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Quit, keys.NewBind("quit", keys.New("q")))
	kb.Quit.AddKey(keys.New("ctrl+c", keys.WithAlias("⌃c"), keys.Hidden()))

	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))

	keys.SetDefaultBind(&kb.Next,
		keys.NewBind("next page",
			keys.New("right", keys.WithAlias("→")),
			keys.New("l"),
		))
	keys.SetDefaultBind(&kb.Prev,
		keys.NewBind("previous page",
			keys.New("left", keys.WithAlias("←")),
			keys.New("h"),
		))
	keys.SetDefaultBind(&kb.First,
		keys.NewBind("first page",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.Last,
		keys.NewBind("last page",
			keys.New("end"),
			keys.New("G"),
		))

	keys.SetDefaultBind(&kb.NextWindow,
		keys.NewBind("next window",
			keys.New("pgdown", keys.WithAlias("pgdn")),
			keys.New("]"),
		))
	keys.SetDefaultBind(&kb.PrevWindow,
		keys.NewBind("previous window",
			keys.New("pgup"),
			keys.New("["),
		))

	keys.SetDefaultBind(&kb.FocusLeft,
		keys.NewBind("focus left",
			keys.New("shift+tab", keys.WithAlias("⇧+tab")),
		))
	keys.SetDefaultBind(&kb.FocusRight,
		keys.NewBind("focus right",
			keys.New("tab"),
		))
	keys.SetDefaultBind(&kb.Click,
		keys.NewBind("press button",
			keys.New("enter", keys.WithAlias("↵")),
			keys.New(" ", keys.WithAlias("space")),
		))
}

func (kb *KeyBinds) Validate() error {
	return keys.ValidateBinds(kb.all()...)
}

func (kb *KeyBinds) all() []*keys.KeyBind {
	return []*keys.KeyBind{
		kb.Quit, kb.Help,
		kb.Next, kb.Prev, kb.First, kb.Last,
		kb.NextWindow, kb.PrevWindow,
		kb.FocusLeft, kb.FocusRight, kb.Click,
	}
}

func (kb *KeyBinds) pageBinds() []keys.KeyBind {
	return []keys.KeyBind{*kb.Next, *kb.Prev, *kb.First, *kb.Last}
}

func (kb *KeyBinds) buttonBinds() []keys.KeyBind {
	return []keys.KeyBind{*kb.NextWindow, *kb.PrevWindow, *kb.FocusLeft, *kb.FocusRight, *kb.Click}
}

func (kb *KeyBinds) commonBinds() []keys.KeyBind {
	return []keys.KeyBind{*kb.Help, *kb.Quit}
}
