package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/currency"
)

var titleCaser = cases.Title(language.English)

// Styles collects the lipgloss styles for the tracker.
type Styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Cursor   lipgloss.Style
	Item     lipgloss.Style
	Label    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Status   lipgloss.Style
	ErrText  lipgloss.Style
	Help     lipgloss.Style
}

func defaultStyles() Styles {
	accent := lipgloss.Color("#9CFF00")
	green := lipgloss.Color("#00C853")
	red := lipgloss.Color("#FF6B6B")
	grey := lipgloss.Color("#CCCCCC")

	return Styles{
		Panel:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(accent).Padding(1, 3),
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(grey),
		Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Item:     lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Positive: lipgloss.NewStyle().Foreground(green).Bold(true),
		Negative: lipgloss.NewStyle().Foreground(red).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(green),
		ErrText:  lipgloss.NewStyle().Foreground(red),
		Help:     lipgloss.NewStyle().Foreground(grey).Italic(true),
	}
}

func (m Model) View() string {
	var body string
	switch m.page {
	case pageMenu:
		body = m.viewMenu()
	case pageIncome, pageExpense:
		body = m.viewEntry()
	case pageSummary:
		body = m.viewSummary()
	}

	panel := m.styles.Panel.Render(body)
	if m.width == 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Personal Finance Tracker") + "\n")
	b.WriteString(m.styles.Subtitle.Render("Select an option below:") + "\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			b.WriteString(m.styles.Cursor.Render("> "+item) + "\n")
		} else {
			b.WriteString(m.styles.Item.Render("  "+item) + "\n")
		}
	}

	m.writeMessages(&b)
	b.WriteString("\n" + m.styles.Help.Render("up/down: move • enter: select • q: quit"))
	return b.String()
}

func (m Model) viewEntry() string {
	kind := category.KindIncome
	if m.page == pageExpense {
		kind = category.KindExpense
	}
	label := titleCaser.String(kind.Label())

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add "+label) + "\n\n")
	b.WriteString(m.styles.Subtitle.Render("Enter "+kind.Label()+" amount:") + "\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(m.styles.Subtitle.Render("Select "+kind.Label()+" category:") + "\n")

	for i, name := range m.categories() {
		if i == m.catIndex {
			b.WriteString(m.styles.Cursor.Render("> "+name) + "\n")
		} else {
			b.WriteString(m.styles.Item.Render("  "+name) + "\n")
		}
	}

	m.writeMessages(&b)
	b.WriteString("\n" + m.styles.Help.Render("enter: submit • up/down: category • esc: back"))
	return b.String()
}

func (m Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Summary Report") + "\n\n")

	if m.report == nil {
		b.WriteString("No entries yet.\n")
	} else {
		b.WriteString("Total Income:   " + m.formatAmount(m.report.TotalIncome) + "\n")
		b.WriteString("Total Expenses: " + m.formatAmount(m.report.TotalExpenses) + "\n")

		net := m.formatAmount(m.report.NetBalance)
		switch {
		case m.report.NetBalance > 0:
			net = m.styles.Positive.Render(net)
		case m.report.NetBalance < 0:
			net = m.styles.Negative.Render(net)
		}
		b.WriteString("Net Balance:    " + net + "\n\n")

		b.WriteString(m.styles.Label.Render("Income by Category:") + "\n")
		for _, name := range m.svc.Registry().Names(category.KindIncome) {
			b.WriteString("  " + name + ": " + m.formatAmount(m.report.Income[name]) + "\n")
		}
		b.WriteString("\n" + m.styles.Label.Render("Expenses by Category:") + "\n")
		for _, name := range m.svc.Registry().Names(category.KindExpense) {
			b.WriteString("  " + name + ": " + m.formatAmount(m.report.Expenses[name]) + "\n")
		}
	}

	m.writeMessages(&b)
	b.WriteString("\n" + m.styles.Help.Render("esc: back"))
	return b.String()
}

// writeMessages appends the store notices and the current status line.
func (m Model) writeMessages(b *strings.Builder) {
	for _, n := range m.notices {
		b.WriteString("\n" + m.styles.Subtitle.Render(n))
	}
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.ErrText
		}
		b.WriteString("\n" + style.Render(m.status))
	}
}

func (m Model) formatAmount(v float64) string {
	return currency.Format(v, m.code)
}
