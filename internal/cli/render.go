// Package cli renders ledger reports for the terminal.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	okStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	overStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
// A row holding the single cell "---" draws a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned,
// the rest are right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(valueStyle.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(valueStyle.Render(" " + pad + cell + " "))
			}
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

// RenderBudgetBar draws how much of the budget is used. The bar turns orange
// at the warning threshold and red past 100%.
func RenderBudgetBar(percent decimal.Decimal, width int) string {
	filled := int(percent.Div(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(int64(width))).IntPart())
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	style := okStyle
	switch {
	case percent.GreaterThan(decimal.NewFromInt(100)):
		style = overStyle
	case percent.GreaterThanOrEqual(calculator.WarningThreshold):
		style = warnStyle
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", style.Render(bar), FormatPercent(percent))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []decimal.Decimal) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := decimal.Max(values[0], values[1:]...)
	if !max.IsPositive() {
		max = decimal.NewFromInt(1)
	}

	var b strings.Builder
	steps := decimal.NewFromInt(int64(len(blocks) - 1))
	for _, v := range values {
		idx := int(v.Div(max).Mul(steps).IntPart())
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderTrend renders a trend summary as a key/value table.
func RenderTrend(s budget.TrendSummary) string {
	top := mutedStyle.Render("none")
	if s.TopCategory != nil {
		top = fmt.Sprintf("%s (%s)", *s.TopCategory, FormatMoney(s.TopCategoryAmount))
	}

	rows := [][]string{
		{"This month", FormatMoney(s.CurrentTotal)},
		{"Last month", FormatMoney(s.PreviousTotal)},
		{"Change", FormatDelta(s.ChangePercent)},
		{"Top category", top},
	}

	if s.MonthlyBudget.IsPositive() {
		rows = append(rows,
			[]string{"---"},
			[]string{"Budget", FormatMoney(s.MonthlyBudget)},
			[]string{"Used", RenderBudgetBar(s.BudgetPercent, 20)},
			[]string{"Remaining", FormatMoney(s.RemainingBudget)},
		)
		if s.BudgetWarning {
			rows = append(rows, []string{"Status", warnStyle.Render("over 80% of budget")})
		}
	}

	return RenderTable(Table{Title: s.Period.Key(), Rows: rows})
}

// RenderMonthly renders monthly totals with a sparkline footer.
func RenderMonthly(totals []budget.MonthTotal) string {
	rows := make([][]string, 0, len(totals)+2)
	values := make([]decimal.Decimal, len(totals))
	for i, t := range totals {
		rows = append(rows, []string{t.Period.Key(), FormatMoney(t.Total)})
		values[i] = t.Total
	}
	rows = append(rows, []string{"---"}, []string{"Trend", RenderSparkline(values)})

	return RenderTable(Table{Title: "Monthly totals", Headers: []string{"Month", "Total"}, Rows: rows})
}

// RenderCategories renders a category breakdown, largest first.
func RenderCategories(categories []calculator.CategoryAmount) string {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Amount)
	}

	rows := make([][]string, len(categories))
	for i, c := range categories {
		rows[i] = []string{c.Category, FormatMoney(c.Amount), FormatPercent(calculator.Percent(c.Amount, total))}
	}

	return RenderTable(Table{Title: "By category", Headers: []string{"Category", "Amount", "Share"}, Rows: rows})
}
