package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
)

func TestWriteXLSX(t *testing.T) {
	march, _ := period.ForMonth(2025, 3, time.UTC)
	report := Report{
		Expenses: []*models.Expense{
			{
				Amount:      decimal.RequireFromString("12.50"),
				Category:    "Food",
				Description: "lunch",
				OccurredAt:  time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
			},
		},
		Monthly: []budget.MonthTotal{
			{Period: march.Previous(), Total: decimal.Zero},
			{Period: march, Total: decimal.RequireFromString("12.5")},
		},
		Categories: []calculator.CategoryAmount{
			{Category: "Food", Amount: decimal.RequireFromString("12.5")},
		},
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != SheetExpenses {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	rows, err := f.GetRows(SheetExpenses)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one expense, got %d rows", len(rows))
	}
	if rows[1][0] != "2025-03-14" || rows[1][1] != "Food" || rows[1][2] != "12.50" {
		t.Errorf("unexpected expense row: %v", rows[1])
	}

	monthly, _ := f.GetRows(SheetMonthly)
	if len(monthly) != 3 || monthly[1][0] != "2025-02" || monthly[2][1] != "12.50" {
		t.Errorf("unexpected monthly rows: %v", monthly)
	}
}
