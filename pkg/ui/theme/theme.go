// Package theme derives the terminal styles used by pgn from a chroma style.
package theme

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

var (
	ErrInvalidName    = errors.New("invalid theme name")
	ErrRegisterStyles = errors.New("register styles")

	Default = New("github")
)

type Theme struct {
	ActivePageStyle     lipgloss.Style
	FocusStyle          lipgloss.Style
	GenericTextStyle    lipgloss.Style
	HelpStyle           lipgloss.Style
	ItemStyle           lipgloss.Style
	LineNumberStyle     lipgloss.Style
	LogoStyle           lipgloss.Style
	NavStyle            lipgloss.Style
	PageStyle           lipgloss.Style
	StatusBarErrorStyle lipgloss.Style
	StatusBarPosStyle   lipgloss.Style
	StatusBarStyle      lipgloss.Style
	SubtleStyle         lipgloss.Style

	ChromaStyle *chroma.Style
	Ellipsis    string
}

// New builds a [Theme] from the named chroma style. The names "dark",
// "light" and "auto" select a github variant.
func New(name string) *Theme {
	style := newChromaStyle(name)

	var (
		genericStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Background))

		selectedStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.NameTag))

		subtleStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Comment))

		logoStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromTokenBg(chroma.Background)).
				Background(style.lipglossFromToken(chroma.NameTag)).
				Bold(true)

		pageStyle = genericStyle.
				Padding(0, 1)

		activePageStyle = selectedStyle.
				Padding(0, 1).
				Bold(true).
				Underline(true)

		navStyle = subtleStyle.
				Padding(0, 1)

		focusStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(style.lipglossFromTokenBg(chroma.Background)).
				Background(style.lipglossFromTokenWithFactor(chroma.NameTag, 0.3))

		helpStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromTokenWithFactor(chroma.Background, 0.2)).
				Background(style.lipglossFromTokenBgWithFactor(chroma.Background, 0.2))

		statusBarStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Background)).
				Background(style.lipglossFromTokenBgWithFactor(chroma.Background, 0.1))

		statusBarPosStyle = lipgloss.NewStyle().
					Foreground(style.lipglossFromToken(chroma.Background)).
					Background(style.lipglossFromTokenBgWithFactor(chroma.Background, 0.15))

		statusBarErrorStyle = genericStyle.
					Background(style.lipglossFromToken(chroma.GenericDeleted))
	)

	return &Theme{
		ActivePageStyle:     activePageStyle,
		FocusStyle:          focusStyle,
		GenericTextStyle:    genericStyle,
		HelpStyle:           helpStyle,
		ItemStyle:           genericStyle,
		LineNumberStyle:     subtleStyle,
		LogoStyle:           logoStyle,
		NavStyle:            navStyle,
		PageStyle:           pageStyle,
		StatusBarErrorStyle: statusBarErrorStyle,
		StatusBarPosStyle:   statusBarPosStyle,
		StatusBarStyle:      statusBarStyle,
		SubtleStyle:         subtleStyle,

		ChromaStyle: style.style,
		Ellipsis:    Ellipsis,
	}
}

// Register adds a custom chroma style that can then be selected by name.
func Register(name string, entries chroma.StyleEntries) error {
	if name == "" {
		return ErrInvalidName
	}

	customTheme, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterStyles, err)
	}

	styles.Register(customTheme)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(theme string) chromaStyle {
	s := styles.Get(getStyle(theme))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) lipglossFromToken(c chroma.TokenType) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Colour.String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) lipglossFromTokenBg(c chroma.TokenType) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Background.String())
}

func (cs chromaStyle) lipglossFromTokenWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Colour.BrightenOrDarken(factor).String()) //nolint:misspell // Chroma naming.
}

func (cs chromaStyle) lipglossFromTokenBgWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Background.BrightenOrDarken(factor).String())
}

func getStyle(style string) string {
	switch style {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return getDefaultStyle()
	default:
		return style
	}
}

func getDefaultStyle() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "" // Fallback.
	}
	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
