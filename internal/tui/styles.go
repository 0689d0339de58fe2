package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Saffron  = lipgloss.Color("#FF9933")
	Leaf     = lipgloss.Color("#138808")
	Danger   = lipgloss.Color("#E53935")
	Amber    = lipgloss.Color("#FFC107")
	Muted    = lipgloss.Color("#8A8F98")
	Ink      = lipgloss.Color("#F2F2F2")
	CardEdge = lipgloss.Color("#2A3850")
)

// Styles holds the rendered styles of the checker.
type Styles struct {
	Header    lipgloss.Style
	Status    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Cursor    lipgloss.Style
	Safe      lipgloss.Style
	Risk      lipgloss.Style
	Alert     lipgloss.Style
	Help      lipgloss.Style
	Spinner   lipgloss.Style
	Risks     map[string]lipgloss.Style
}

// DefaultStyles returns the dark terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(Saffron),
		Status:    lipgloss.NewStyle().Foreground(Muted),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(Muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(Ink).Background(CardEdge),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(CardEdge).Padding(0, 1),
		Label:     lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(Muted),
		Cursor:    lipgloss.NewStyle().Foreground(Saffron).Bold(true),
		Safe:      lipgloss.NewStyle().Bold(true).Foreground(Leaf),
		Risk:      lipgloss.NewStyle().Bold(true).Foreground(Danger),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Danger).
			Padding(0, 2).
			Bold(true),
		Help:    lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Spinner: lipgloss.NewStyle().Foreground(Saffron),
		Risks: map[string]lipgloss.Style{
			"red":   lipgloss.NewStyle().Foreground(Danger),
			"amber": lipgloss.NewStyle().Foreground(Amber),
			"green": lipgloss.NewStyle().Foreground(Leaf),
		},
	}
}
