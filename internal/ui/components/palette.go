package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeline/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

var paletteHints = []string{
	"week <Mon..Sun|0-6> HH:MM-HH:MM <event>",
	"day today HH:MM-HH:MM <event>",
	"day tomorrow HH:MM-HH:MM <event>",
	"day <+N|-N> HH:MM-HH:MM <event>",
	"day thisweek <weekday> HH:MM-HH:MM <event>",
	"day nextweek <weekday> HH:MM-HH:MM <event>",
	"day next<N>week <weekday> HH:MM-HH:MM <event>",
	"day YYYY-M-D HH:MM HH:MM <event>",
	"day M-D HH:MM-HH:MM <event>",
	"exit",
}

// Palette is a single-line command prompt backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "week Thr 13:30-15:30 review"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Hints lists up to limit command forms for the typed input. Once the
// command word is complete every form of that command is offered.
func Hints(input string, limit int) []string {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	kind, _, typingArgs := strings.Cut(input, " ")
	var out []string
	for _, h := range paletteHints {
		hintKind, _, _ := strings.Cut(h, " ")
		if strings.HasPrefix(h, input) || (typingArgs && hintKind == kind) {
			out = append(out, h)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := Hints(p.input.Value(), 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Add event") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
