// Package tui is the interactive watch view: a process tree and a details
// pane for one pid, both refreshed every second.
package tui

import (
	"fmt"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pranshuparmar/pinfo/internal/target"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

// Options configures the watch view.
type Options struct {
	// PID opens the details pane for this process right away when non-zero.
	PID               int
	ReadEnvironment   bool
	TitleFormat       string
	RemoteTitleFormat string
	ShowAll           bool
}

type tickMsg time.Time

type modelState int

const (
	stateProcesses modelState = iota
	stateWatch
)

// unsorted keeps the tree order.
const unsorted = -1

type tuiModel struct {
	opts        Options
	state       modelState
	table       table.Model
	filterInput textinput.Model
	filtering   bool
	processes   []model.ProcessSummary
	paused      bool
	currentUser string
	showAll     bool
	details     details
	sortColumn  int
	sortAsc     bool
	message     string
	messageTime time.Time
	err         error
	width       int
	height      int
}

func initialModel(opts Options) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 50
	ti.Width = 30

	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	m := tuiModel{
		opts:        opts,
		state:       stateProcesses,
		filterInput: ti,
		currentUser: username,
		showAll:     opts.ShowAll,
		sortColumn:  unsorted,
		sortAsc:     true,
	}
	if opts.PID > 0 {
		m.state = stateWatch
		m.details.pid = opts.PID
	}
	m.initTable()
	return m
}

func (m *tuiModel) initTable() {
	columns := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "User", Width: 12},
		{Title: "Process Tree", Width: 60},
	}

	if m.sortColumn >= 0 && m.sortColumn < len(columns) {
		indicator := " ↑"
		if !m.sortAsc {
			indicator = " ↓"
		}
		columns[m.sortColumn].Title += indicator
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-15, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)

	m.table = t
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(tick(), m.refreshData())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) refreshData() tea.Cmd {
	if m.paused {
		return nil
	}
	if m.state == stateWatch && m.details.pid != 0 {
		return inspect(m.details.pid, m.opts)
	}
	return func() tea.Msg {
		procs, err := target.List()
		if err != nil {
			return err
		}
		return procs
	}
}

func (m *tuiModel) setMessage(msg string, now time.Time) {
	m.message = msg
	m.messageTime = now
}

func (m tuiModel) selectedPID() int {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0
	}
	pid, _ := strconv.Atoi(row[0])
	return pid
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.filtering {
		if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "enter" || key.String() == "esc") {
			m.filtering = false
			m.filterInput.Blur()
			m.updateRows()
			return m, nil
		}
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.updateRows()
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "esc":
			m.state = stateProcesses
			return m, m.refreshData()
		case "2":
			if m.details.pid == 0 {
				return m, nil
			}
			m.state = stateWatch
			return m, m.refreshData()
		case "enter":
			if pid := m.selectedPID(); pid > 0 {
				m.state = stateWatch
				m.details = details{pid: pid}
				return m, m.refreshData()
			}
			return m, nil
		case "p":
			m.paused = !m.paused
			return m, nil
		case "/":
			if m.state != stateProcesses {
				return m, nil
			}
			m.filtering = true
			m.filterInput.Focus()
			return m, nil
		case "a":
			m.showAll = !m.showAll
			m.updateRows()
			return m, nil
		case "s":
			m.sortColumn++
			if m.sortColumn >= len(m.table.Columns()) {
				m.sortColumn = unsorted
			}
			m.sortAsc = true
			m.initTable()
			m.updateRows()
			return m, nil
		case "r":
			m.sortAsc = !m.sortAsc
			m.initTable()
			m.updateRows()
			return m, nil
		case "S":
			m.saveSnapshot(time.Now())
			return m, nil
		}
	case tickMsg:
		return m, tea.Batch(tick(), m.refreshData())
	case []model.ProcessSummary:
		m.processes = msg
		m.err = nil
		m.updateRows()
	case details:
		// drop late results for a pid that is no longer being watched
		if msg.pid == m.details.pid {
			m.details = msg
		}
		return m, nil
	case error:
		m.err = msg
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-15, 5))
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateRows() {
	rows := processRows(m.processes, parseFilter(m.filterInput.Value(), m.currentUser, m.showAll))
	if m.sortColumn != unsorted {
		sortRows(rows, m.sortColumn, m.sortAsc)
	}
	m.table.SetRows(rows)
}

func (m tuiModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("\nError: %v\n\nPress q to quit", m.err)
	}

	var b strings.Builder
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	title := "pinfo watch"
	if m.paused {
		title += " (PAUSED)"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true).Render(title) + "\n\n")

	tabs := []string{"[1] Processes", "[2] Details"}
	for i, t := range tabs {
		style := lipgloss.NewStyle().Padding(0, 1)
		if int(m.state) == i {
			style = style.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
		} else {
			style = style.Foreground(lipgloss.Color("240"))
		}
		b.WriteString(style.Render(t) + " ")
	}

	mode := "User Processes"
	if m.showAll {
		mode = "All Processes"
	}
	b.WriteString(muted.Render("  Mode: [a] " + mode))
	if m.sortColumn != unsorted && m.sortColumn < len(m.table.Columns()) {
		b.WriteString(muted.Render("  Sort: [s] " + m.table.Columns()[m.sortColumn].Title))
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateWatch:
		if m.details.snap.PID == 0 && m.details.err == nil {
			b.WriteString(fmt.Sprintf(" Reading pid %d...\n", m.details.pid))
		} else {
			b.WriteString(baseStyle.Render(renderDetails(m.details)) + "\n")
		}
	default:
		switch {
		case m.filtering:
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Render(" / ") + m.filterInput.View() + "\n")
		case m.filterInput.Value() != "":
			b.WriteString(muted.Render(" Filter: "+m.filterInput.Value()) + "\n")
		default:
			b.WriteString("\n")
		}
		b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	}

	if m.message != "" && time.Since(m.messageTime) < 3*time.Second {
		b.WriteString("\n" + lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			Render(" "+m.message+" ") + "\n")
	}

	help := "\n  q: quit • 1-2: tabs • /: filter • a: all/user • s: sort • r: reverse • S: snapshot • p: pause • enter: details"
	if m.state == stateWatch {
		help += " • esc: back"
	}
	b.WriteString(muted.Render(help) + "\n")

	return b.String()
}

// Run starts the watch view and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(initialModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
