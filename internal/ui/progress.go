package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Event is one finished file during a directory check.
type Event struct {
	Path   string
	Errors int
	Failed bool // I/O failure, not diagnostics
	Done   int
	Total  int
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	done    int
	total   int
	width   int
	quit    bool
}

type fileItem struct {
	path   string
	status string
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress
// over a stream of per-file events. The channel closing ends the program.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		total:   len(files),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
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

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.applyEvent(Event(msg))
		return m, tea.Batch(m.prog.SetPercent(m.percent()), m.listenForEvent())
	case doneMsg:
		m.quit = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.quit {
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
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev Event) {
	m.done = ev.Done
	if ev.Total > 0 {
		m.total = ev.Total
	}
	status := "ok"
	switch {
	case ev.Failed:
		status = "failed"
	case ev.Errors == 1:
		status = "1 error"
	case ev.Errors > 1:
		status = fmt.Sprintf("%d errors", ev.Errors)
	}
	if i, ok := m.index[ev.Path]; ok {
		m.items[i].status = status
	}
}

func (m *progressModel) percent() float64 {
	if m.total == 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

func (m *progressModel) View() string {
	if m.total == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.done, m.total)
	if m.quit {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.prog.View())
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle := lipgloss.NewStyle().Faint(true)

	for _, item := range m.items {
		name := runewidth.Truncate(item.path, nameWidth, "…")
		line := fmt.Sprintf("  %s %s", runewidth.FillRight(name, nameWidth), item.status)
		switch item.status {
		case "ok":
			b.WriteString(okStyle.Render(line))
		case "queued":
			b.WriteString(dimStyle.Render(line))
		default:
			b.WriteString(badStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RunProgress drives the model until the event channel closes.
func RunProgress(title string, files []string, events <-chan Event) error {
	p := tea.NewProgram(NewProgressModel(title, files, events))
	_, err := p.Run()
	return err
}
