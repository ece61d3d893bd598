package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Planner theme (CLI + TUI).
// Styles are package-level so every renderer picks up the active palette.

const (
	IconTask    = "📝"
	IconHabit   = "🔁"
	IconGoal    = "🎯"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconFire    = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconTrash   = "🗑️"
	IconQuote   = "💬"
	IconChart   = "📊"
)

// Palette is one selectable theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Muted   lipgloss.Color
	Gold    lipgloss.Color
	Bar     lipgloss.Color
}

var palettes = map[string]Palette{
	"light": {
		Primary: lipgloss.Color("63"),  // blue
		Accent:  lipgloss.Color("205"), // magenta
		Good:    lipgloss.Color("42"),  // green
		Warn:    lipgloss.Color("214"), // orange
		Bad:     lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("244"), // gray
		Gold:    lipgloss.Color("220"),
		Bar:     lipgloss.Color("33"),
	},
	"dark": {
		Primary: lipgloss.Color("111"),
		Accent:  lipgloss.Color("219"),
		Good:    lipgloss.Color("120"),
		Warn:    lipgloss.Color("222"),
		Bad:     lipgloss.Color("203"),
		Muted:   lipgloss.Color("246"),
		Gold:    lipgloss.Color("229"),
		Bar:     lipgloss.Color("75"),
	},
	"forest": {
		Primary: lipgloss.Color("29"),
		Accent:  lipgloss.Color("136"),
		Good:    lipgloss.Color("70"),
		Warn:    lipgloss.Color("178"),
		Bad:     lipgloss.Color("124"),
		Muted:   lipgloss.Color("108"),
		Gold:    lipgloss.Color("184"),
		Bar:     lipgloss.Color("35"),
	},
}

// DefaultTheme is applied at startup.
const DefaultTheme = "light"

var (
	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style
	Bar   lipgloss.Style
	Done  lipgloss.Style

	Panel       lipgloss.Style
	SelectedRow lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style

	PriorityHigh lipgloss.Style
	PriorityLow  lipgloss.Style

	current string
)

func init() {
	_ = ApplyTheme(DefaultTheme)
}

// Themes lists the selectable theme names.
func Themes() []string {
	out := make([]string, 0, len(palettes))
	for name := range palettes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func HasTheme(name string) bool {
	_, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// CurrentTheme returns the name of the applied theme.
func CurrentTheme() string { return current }

// ApplyTheme rebuilds every style from the named palette.
func ApplyTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Themes(), ", "))
	}

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	Muted = lipgloss.NewStyle().Foreground(p.Muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.Good)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.Warn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.Bad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.Gold)
	Bar = lipgloss.NewStyle().Foreground(p.Bar)
	Done = lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Muted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.Gold)
	ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Underline(true).Padding(0, 1)
	Tab = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)

	PriorityHigh = lipgloss.NewStyle().Foreground(p.Bad)
	PriorityLow = lipgloss.NewStyle().Foreground(p.Good)

	current = name
	return nil
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}
