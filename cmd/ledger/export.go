package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/export"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

var (
	flagExportEmail  string
	flagExportOut    string
	flagExportMonths int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a user's recent expenses and totals to an .xlsx workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportEmail, "email", "", "email of the user to export")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "ledger.xlsx", "output workbook path")
	exportCmd.Flags().IntVar(&flagExportMonths, "months", 12, "number of months to export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, loc, err := setup(false)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	user, err := lookupUser(ctx, store, flagExportEmail)
	if err != nil {
		return err
	}

	now := time.Now()
	aggregator := budget.NewAggregator(store, loc)
	monthly, err := aggregator.MonthlyTotals(ctx, user.ID, flagExportMonths, now)
	if err != nil {
		return err
	}

	from, to := monthly[0].Period.Start, monthly[len(monthly)-1].Period.End
	expenses, err := store.FindExpenses(ctx, models.ExpenseFilter{UserID: user.ID, From: from, To: to})
	if err != nil {
		return err
	}

	report := export.Report{
		Expenses:   expenses,
		Monthly:    monthly,
		Categories: calculator.SortedCategories(calculator.ByCategory(expenses)),
	}

	f, err := os.Create(flagExportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", flagExportOut, err)
	}
	if err := report.WriteXLSX(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	slog.Info("Exported ledger", "user_id", user.ID, "expenses", len(expenses), "path", flagExportOut)
	return nil
}
