package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"budgman/internal/core"
)

const timeDisplayLayout = "2006-01-02 15:04"

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	amount lipgloss.Style
	border lipgloss.Style
	muted  lipgloss.Style
}

// newStyles binds styles to w so colors are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")),
		label:  r.NewStyle().Width(10).Foreground(lipgloss.Color("#7f849c")),
		value:  r.NewStyle().Width(14).Align(lipgloss.Right),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		amount: r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		border: r.NewStyle().Foreground(lipgloss.Color("#585b70")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#7f849c")),
	}
}

// entryRow is the common view of an expense or an income.
type entryRow struct {
	ID     int64
	Name   string
	Amount core.Money
	Time   time.Time
}

func renderStats(w io.Writer, stats core.BudgetStats) string {
	st := newStyles(w)
	line := func(label string, m core.Money) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, st.label.Render(label), st.value.Render(m.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		st.title.Render(fmt.Sprintf("%s (#%d)", stats.Budget.Name, stats.Budget.ID)),
		line("Budget", stats.Budget.Amount),
		line("Expenses", stats.TotalExpense),
		line("Income", stats.TotalIncome),
	)
}

func renderBudgets(w io.Writer, budgets []core.Budget) string {
	st := newStyles(w)
	if len(budgets) == 0 {
		return st.muted.Render("No budgets.")
	}
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{strconv.FormatInt(int64(b.ID), 10), b.Name, b.Amount.String()})
	}
	return newTable(st, []string{"ID", "NAME", "AMOUNT"}, rows, 2)
}

func renderEntries(w io.Writer, kind string, entries []entryRow) string {
	st := newStyles(w)
	if len(entries) == 0 {
		return st.muted.Render(fmt.Sprintf("No %s.", kind))
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Time.Format(timeDisplayLayout),
			e.Name,
			e.Amount.String(),
		})
	}
	return newTable(st, []string{"ID", "TIME", "NAME", "AMOUNT"}, rows, 3)
}

func newTable(st styles, headers []string, rows [][]string, amountCol int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case col == amountCol:
				return st.amount
			default:
				return st.cell
			}
		})
	return strings.TrimRight(t.Render(), "\n")
}
