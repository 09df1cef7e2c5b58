// Package keys describes configurable key bindings and renders them as a
// help table.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/macropower/pgn/pkg/ui/theme"
)

// ErrDuplicateKey is returned by [ValidateBinds] when a key is bound twice.
var ErrDuplicateKey = errors.New("duplicate key binding")

// Key represents a keyboard key with optional alias and visibility settings.
type Key struct {
	// Code is the key code, as reported by Bubble Tea (e.g. "ctrl+c").
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias is an alternative display name for the key.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden hides the key from the help view.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := Key{Code: code}
	for _, opt := range opts {
		opt(&k)
	}

	return k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind associates keys with an action description.
type KeyBind struct {
	// Description of the action.
	Description string `json:"description,omitempty" jsonschema:"title=Description"`
	// Keys that trigger the action.
	Keys []Key `json:"keys,omitempty" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	keys := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		if !k.Hidden {
			keys = append(keys, k.String())
		}
	}

	return strings.Join(keys, "/")
}

// Match reports whether key triggers the binding.
func (kb *KeyBind) Match(key string) bool {
	if kb == nil {
		return false
	}

	for _, k := range kb.Keys {
		if k.Code == key {
			return true
		}
	}

	return false
}

// AddKey appends key unless its code is already bound.
func (kb *KeyBind) AddKey(key Key) {
	if kb == nil {
		return
	}

	for _, k := range kb.Keys {
		if k.Code == key.Code {
			return
		}
	}

	kb.Keys = append(kb.Keys, key)
}

// StringRow renders the binding as a padded help row. keyWidth should be the
// width of the widest key string in the column.
func (kb *KeyBind) StringRow(keyWidth, descWidth int) string {
	keys := kb.String()
	if keys == "" {
		return ""
	}

	desc := kb.Description
	if w := max(0, descWidth-2); ansi.PrintableRuneWidth(desc) > w {
		desc = truncate.StringWithTail(desc, uint(w), theme.Ellipsis) //nolint:gosec // Uses max.
	}

	keyPad := strings.Repeat(" ", max(0, keyWidth-ansi.PrintableRuneWidth(keys)))
	descPad := strings.Repeat(" ", max(0, descWidth-2-ansi.PrintableRuneWidth(desc)))

	return keys + keyPad + "  " + desc + descPad
}

// KeyBindRenderer lays out bindings in columns.
type KeyBindRenderer struct {
	columns [][]KeyBind
}

// AddColumn adds a column of bindings. Empty columns are ignored.
func (kbr *KeyBindRenderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) == 0 {
		return
	}

	kbr.columns = append(kbr.columns, kbs)
}

// Render renders all columns side by side within width.
func (kbr *KeyBindRenderer) Render(width int) string {
	numCols := len(kbr.columns)
	if numCols == 0 {
		return ""
	}

	colWidth := max(6, width/numCols-2)
	remainder := max(0, width%numCols)

	cols := make([][]string, numCols)
	maxRows := 0

	for i, col := range kbr.columns {
		cols[i] = column(colWidth, col...)
		maxRows = max(maxRows, len(cols[i]))
	}

	rows := make([]string, 0, maxRows)
	for row := range maxRows {
		var sb strings.Builder

		for _, col := range cols {
			cell := strings.Repeat(" ", colWidth)
			if row < len(col) {
				cell = col[row]
			}

			sb.WriteString(" " + cell + " ")
		}

		sb.WriteString(strings.Repeat(" ", remainder))
		rows = append(rows, sb.String())
	}

	return strings.Join(rows, "\n")
}

func column(width int, kbs ...KeyBind) []string {
	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.PrintableRuneWidth(kb.String()))
	}

	rows := []string{}
	for _, kb := range kbs {
		if row := kb.StringRow(keyWidth, width-keyWidth); row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

// ValidateBinds returns an error for every key code that appears in more
// than one binding.
func ValidateBinds(kbs ...*KeyBind) error {
	var errs []error

	seen := make(map[string]string)
	for _, kb := range kbs {
		if kb == nil {
			continue
		}

		for _, key := range kb.Keys {
			if prev, ok := seen[key.Code]; ok {
				errs = append(errs, fmt.Errorf("%w: %q used by %q and %q",
					ErrDuplicateKey, key.Code, prev, kb.Description))

				continue
			}

			seen[key.Code] = kb.Description
		}
	}

	return errors.Join(errs...)
}

// SetDefaultBind fills in a nil or partially configured binding.
func SetDefaultBind(kb **KeyBind, defaultKb KeyBind) {
	if *kb == nil {
		*kb = &defaultKb

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = defaultKb.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = defaultKb.Description
	}
}
