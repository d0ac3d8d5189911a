package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeline/internal/modules/schedule/dto"
	apperrors "timeline/internal/platform/errors"
	"timeline/internal/ui/components"
	"timeline/internal/ui/theme"
)

type schedulePort interface {
	Report(ctx context.Context) (dto.ReportOutput, error)
	Stage(ctx context.Context, command string) (dto.PendingOutput, error)
	Commit(ctx context.Context, pending dto.PendingOutput) (dto.CommitOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

const reportStatusPrefix = "report: "

type reportLoadedMsg struct {
	report dto.ReportOutput
	err    error
}

type stagedMsg struct {
	pending dto.PendingOutput
	err     error
}

type committedMsg struct {
	out dto.CommitOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Add     key.Binding
	Refresh key.Binding
	Yes     key.Binding
	No      key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a", ":"), key.WithHelp("a", "add event")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "discard")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Yes, k.No},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the live dashboard: today's report refreshed on every tick,
// plus an add prompt whose result waits for y/n before it is written.
type Model struct {
	port     schedulePort
	interval time.Duration

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette

	report  dto.ReportOutput
	loaded  bool
	pending *dto.PendingOutput
	status  string
	width   int
	height  int
}

func NewModel(port schedulePort, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	return Model{
		port:     port,
		interval: interval,
		keys:     defaultKeys(),
		help:     help.New(),
		palette:  components.NewPalette(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadReportCmd(), m.tickCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width

	case tickMsg:
		return m, tea.Batch(m.loadReportCmd(), m.tickCmd())

	case reportLoadedMsg:
		if msg.err != nil {
			m.status = reportStatusPrefix + msg.err.Error()
			return m, nil
		}
		m.report = msg.report
		m.loaded = true
		if strings.HasPrefix(m.status, reportStatusPrefix) {
			m.status = "ready"
		}

	case components.PaletteSubmitMsg:
		return m, m.stageCmd(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case stagedMsg:
		if errors.Is(msg.err, apperrors.ErrTermination) {
			return m, tea.Quit
		}
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		pending := msg.pending
		m.pending = &pending
		m.status = pending.Summary + "  (y/n)"

	case committedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.status = "Adding success."
		return m, m.loadReportCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		// cursor blink and other textinput traffic
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.pending != nil {
		switch {
		case key.Matches(msg, m.keys.Yes):
			pending := *m.pending
			m.pending = nil
			m.status = "saving…"
			return m, m.commitCmd(pending)
		case key.Matches(msg, m.keys.No):
			m.pending = nil
			m.status = "discarded"
		}
		return m, nil
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Add):
		return m, m.palette.Open()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadReportCmd()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case !m.loaded:
		content = theme.Muted.Render("loading…")
	default:
		content = m.renderReport()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	stamp := ""
	if m.loaded {
		stamp = m.report.Now.Format("2006-01-02 15:04:05")
	}
	bar := theme.Title.Render("timeline") + "  " + theme.Muted.Render(stamp)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderReport() string {
	message := theme.StateStyle(m.report.State).Render(m.report.Message)
	paneW := 0
	if m.width > 8 {
		paneW = m.width/2 - 4
	}
	ongoing := renderPane("Ongoing", m.report.Ongoing, m.report.State == "ongoing", paneW)
	waiting := renderPane("Waiting", m.report.Waiting, m.report.State == "waiting", paneW)
	return message + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, ongoing, " ", waiting)
}

func renderPane(title string, items []dto.EventOutput, active bool, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n")
	if len(items) == 0 {
		sb.WriteString(theme.Muted.Render("nothing"))
	}
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s  %s-%s\n", item.Label, item.Begin, item.End)
		sb.WriteString(theme.Hot.Render("  ⏱ " + item.CountdownText))
	}
	style := theme.Pane
	if active {
		style = theme.PaneActive
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(sb.String())
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.pending != nil {
		left = theme.Hot.Render(left)
	}
	right := theme.Muted.Render("a:add  r:refresh  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadReportCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Report(context.Background())
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m Model) stageCmd(input string) tea.Cmd {
	return func() tea.Msg {
		pending, err := m.port.Stage(context.Background(), input)
		return stagedMsg{pending: pending, err: err}
	}
}

func (m Model) commitCmd(pending dto.PendingOutput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Commit(context.Background(), pending)
		return committedMsg{out: out, err: err}
	}
}
