package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"asls/internal/workspace"
)

type progressModel struct {
	title   string
	events  <-chan workspace.Progress
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	phase   string
	width   int
	done    bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg workspace.Progress
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders workspace load
// progress. It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan workspace.Progress) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[normalize(file)] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(workspace.Progress(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.phase != "" {
		header = fmt.Sprintf("%s (%s)", header, m.phase)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev workspace.Progress) tea.Cmd {
	m.phase = phaseLabel(ev.Phase)
	if idx, ok := m.index[normalize(ev.Path)]; ok {
		m.items[idx].status = statusLabel(ev.Phase)
	}
	return m.prog.SetPercent(m.percent())
}

// percent weighs parsing and registration as half of the work each.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		switch item.status {
		case "parsed":
			total += 0.5
		case "done":
			total += 1
		}
	}
	return total / float64(len(m.items))
}

func phaseLabel(phase string) string {
	switch phase {
	case "parse":
		return "parsing"
	case "register":
		return "registering"
	}
	return phase
}

func statusLabel(phase string) string {
	switch phase {
	case "parse":
		return "parsed"
	case "register":
		return "done"
	}
	return "queued"
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "parsed":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
