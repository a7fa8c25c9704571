package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
)

// Accents maps preference names to the highlight color used across the UI.
var Accents = map[string]lipgloss.Color{
	"violet": lipgloss.Color("#cba6f7"),
	"blue":   lipgloss.Color("#89b4fa"),
	"teal":   lipgloss.Color("#94e2d5"),
	"green":  lipgloss.Color("#a6e3a1"),
	"amber":  lipgloss.Color("#f9e2af"),
	"rose":   lipgloss.Color("#f5c2e7"),
}

var (
	Accent lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Warn       lipgloss.Style
)

func init() {
	SetAccent("violet")
}

// SetAccent rebuilds the shared styles around the named accent. Unknown names keep violet.
// Call it before the program starts.
func SetAccent(name string) {
	accent, ok := Accents[name]
	if !ok {
		accent = Accents["violet"]
	}
	Accent = accent

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Accent)

	Title = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Warn = lipgloss.NewStyle().Foreground(Red).Bold(true)
}
