package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/cli"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
)

var (
	flagReportEmail  string
	flagReportMonths int
	flagReportMonth  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a user's trend, monthly totals and category breakdown",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportEmail, "email", "", "email of the user to report on")
	reportCmd.Flags().IntVar(&flagReportMonths, "months", 6, "number of months in the totals table")
	reportCmd.Flags().StringVar(&flagReportMonth, "month", "", "report as of this month (YYYY-MM, default current)")
	rootCmd.AddCommand(reportCmd)
}

// reportTime resolves --month to an instant inside that month.
func reportTime(loc *time.Location) (time.Time, error) {
	if flagReportMonth == "" {
		return time.Now(), nil
	}
	p, err := period.Parse(flagReportMonth, loc)
	if err != nil {
		return time.Time{}, err
	}
	return p.Start, nil
}

func runReport(cmd *cobra.Command, _ []string) error {
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
	user, err := lookupUser(ctx, store, flagReportEmail)
	if err != nil {
		return err
	}

	now, err := reportTime(loc)
	if err != nil {
		return err
	}

	aggregator := budget.NewAggregator(store, loc)
	summary, err := budget.NewReporter(store, aggregator).Report(ctx, user.ID, now)
	if err != nil {
		return err
	}
	monthly, err := aggregator.MonthlyTotals(ctx, user.ID, flagReportMonths, now)
	if err != nil {
		return err
	}
	categories, err := aggregator.ByCategoryForPeriod(ctx, user.ID, summary.Period)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("Ledger report for %s", user.Email)))
	fmt.Fprintln(out, cli.RenderTrend(summary))
	fmt.Fprintln(out, cli.RenderMonthly(monthly))
	if len(categories) > 0 {
		fmt.Fprintln(out, cli.RenderCategories(calculator.SortedCategories(categories)))
	}
	return nil
}
