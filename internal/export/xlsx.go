// Package export writes a user's ledger to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

// Sheet names in the exported workbook.
const (
	SheetExpenses   = "Expenses"
	SheetMonthly    = "Monthly"
	SheetCategories = "Categories"
)

const dateFormat = "2006-01-02"

// Report is everything that goes into one workbook.
type Report struct {
	Expenses   []*models.Expense
	Monthly    []budget.MonthTotal
	Categories []calculator.CategoryAmount
}

// WriteXLSX renders r as an .xlsx workbook to w.
func (r Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	money, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	expenseRows := make([][]any, len(r.Expenses))
	for i, e := range r.Expenses {
		expenseRows[i] = []any{
			e.OccurredAt.Format(dateFormat),
			e.Category,
			e.Amount.InexactFloat64(),
			e.Description,
			e.CardID,
		}
	}
	if err := writeSheet(f, SheetExpenses, []string{"Date", "Category", "Amount", "Description", "Card"}, expenseRows, "C", money); err != nil {
		return err
	}

	monthRows := make([][]any, len(r.Monthly))
	for i, m := range r.Monthly {
		monthRows[i] = []any{m.Period.Key(), m.Total.InexactFloat64()}
	}
	if err := writeSheet(f, SheetMonthly, []string{"Month", "Total"}, monthRows, "B", money); err != nil {
		return err
	}

	categoryRows := make([][]any, len(r.Categories))
	for i, c := range r.Categories {
		categoryRows[i] = []any{c.Category, c.Amount.InexactFloat64()}
	}
	if err := writeSheet(f, SheetCategories, []string{"Category", "Amount"}, categoryRows, "B", money); err != nil {
		return err
	}

	f.SetColWidth(SheetExpenses, "A", "A", 12)
	f.SetColWidth(SheetExpenses, "B", "B", 15)
	f.SetColWidth(SheetExpenses, "C", "C", 12)
	f.SetColWidth(SheetExpenses, "D", "D", 30)
	f.SetColWidth(SheetCategories, "A", "A", 15)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, moneyCol string, money int) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("look up sheet %s: %w", sheet, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	if len(rows) > 0 {
		first := fmt.Sprintf("%s2", moneyCol)
		last := fmt.Sprintf("%s%d", moneyCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, first, last, money); err != nil {
			return fmt.Errorf("style %s amounts: %w", sheet, err)
		}
	}

	return nil
}
