// Package tui implements the interactive tracker: a main menu, the two
// entry pages, and the summary report page.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/model"
	"github.com/pftrack-dev/pftrack/internal/tracker"
)

type page int

const (
	pageMenu page = iota
	pageIncome
	pageExpense
	pageSummary
)

var menuItems = []string{
	"Add Income",
	"Add Expense",
	"View Summary Report",
	"Exit Program",
}

// Model is the bubbletea model for the tracker.
type Model struct {
	svc    *tracker.Service
	code   string // display currency
	styles Styles

	page      page
	menuIndex int

	input    textinput.Model
	catIndex int

	status    string
	statusErr bool
	notices   []string
	report    *model.Report

	width  int
	height int
}

// NewModel creates the initial model.
func NewModel(svc *tracker.Service, code string) Model {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()

	return Model{
		svc:    svc,
		code:   code,
		styles: defaultStyles(),
		input:  ti,
	}
}

// Run starts the interactive tracker and blocks until the user exits.
func Run(svc *tracker.Service, code string) error {
	p := tea.NewProgram(NewModel(svc, code), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.page {
		case pageMenu:
			return m.updateMenu(msg)
		case pageIncome, pageExpense:
			return m.updateEntry(msg)
		case pageSummary:
			return m.updateSummary(msg)
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "q":
		return m.quit()
	case "enter":
		switch m.menuIndex {
		case 0:
			return m.openEntry(pageIncome), nil
		case 1:
			return m.openEntry(pageExpense), nil
		case 2:
			return m.openSummary()
		case 3:
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.page = pageMenu
		m.status = ""
		m.statusErr = false
		return m, nil
	case "up":
		if m.catIndex > 0 {
			m.catIndex--
		}
		return m, nil
	case "down":
		if m.catIndex < len(m.categories())-1 {
			m.catIndex++
		}
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.page = pageMenu
		m.status = ""
	}
	return m, nil
}

// submit runs the shared submit operation for the current entry page.
// On failure the input keeps its text and the page stays put; on
// success the input is cleared and the menu shows the confirmation.
func (m Model) submit() (tea.Model, tea.Cmd) {
	kind := category.KindIncome
	if m.page == pageExpense {
		kind = category.KindExpense
	}

	names := m.categories()
	res, err := m.svc.Submit(kind, names[m.catIndex], m.input.Value())
	m.notices = res.Load.Notices()
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return m, nil
	}

	m.input.Reset()
	m.page = pageMenu
	m.status = titleCaser.String(kind.Label()) + " added successfully."
	m.statusErr = false
	return m, nil
}

func (m Model) openEntry(p page) Model {
	m.page = p
	m.catIndex = 0
	m.status = ""
	m.statusErr = false
	m.notices = nil
	m.input.Focus()
	return m
}

func (m Model) openSummary() (tea.Model, tea.Cmd) {
	report, res := m.svc.Summary()
	m.report = report
	m.notices = res.Notices()
	m.status = ""
	m.page = pageSummary
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	// One last write-through so the file on disk is current.
	_ = m.svc.Flush()
	return m, tea.Quit
}

func (m Model) categories() []string {
	kind := category.KindIncome
	if m.page == pageExpense {
		kind = category.KindExpense
	}
	return m.svc.Registry().Names(kind)
}
