package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette, glyphs and borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help, Button, ButtonActive    lipgloss.Style

	Border lipgloss.Border

	BoxUnchecked, BoxChecked string
	SymDone, SymFail         string
	Cursor                   string
}

var current = classic()

// SetTheme switches the theme; unknown names fall back to classic.
// "mono" also drops colors entirely.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		disableColor = true
		applyColorProfile()
		current = mono()
	default:
		current = classic()
	}
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Button:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8")),
		ButtonActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
		Border:       lipgloss.RoundedBorder(),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymFail: "✖",
		Cursor: "> ",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.ButtonActive = t.ButtonActive.Foreground(lipgloss.Color("13"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain.Bold(true), Muted: plain, Accent: plain,
		Success: plain, Error: plain, Pending: plain,
		Selected: plain.Reverse(true), Done: plain.Strikethrough(true), Help: plain,
		Button: plain.Padding(0, 1), ButtonActive: plain.Padding(0, 1).Underline(true),
		Border:       lipgloss.NormalBorder(),
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymFail: "!",
		Cursor: "> ",
	}
}

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal color detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
	applyColorProfile()
}

func applyColorProfile() {
	switch {
	case disableColor:
		lipgloss.SetColorProfile(termenv.Ascii)
	case forceColor:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}
