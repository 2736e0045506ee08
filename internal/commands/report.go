package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/currency"
	"github.com/pftrack-dev/pftrack/internal/model"
)

func newReportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the summary report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := opts.newService()
			if err != nil {
				return err
			}

			report, res := svc.Summary()
			printNotices(cmd, res)
			if res.Err != nil {
				return res.Err
			}
			if report == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries yet.")
				return nil
			}

			writeReport(cmd.OutOrStdout(), report, svc.Registry(), cfg.Currency)
			return nil
		},
	}
}

func writeReport(w io.Writer, report *model.Report, reg category.Registry, code string) {
	fmt.Fprintf(w, "Total Income:   %s\n", currency.Format(report.TotalIncome, code))
	fmt.Fprintf(w, "Total Expenses: %s\n", currency.Format(report.TotalExpenses, code))
	fmt.Fprintf(w, "Net Balance:    %s\n", currency.Format(report.NetBalance, code))

	fmt.Fprintln(w, "\nIncome by Category:")
	for _, name := range reg.Names(category.KindIncome) {
		fmt.Fprintf(w, "  %s: %s\n", name, currency.Format(report.Income[name], code))
	}

	fmt.Fprintln(w, "\nExpenses by Category:")
	for _, name := range reg.Names(category.KindExpense) {
		fmt.Fprintf(w, "  %s: %s\n", name, currency.Format(report.Expenses[name], code))
	}
}

func newCategoriesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the income and expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.newService()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Income:")
			for _, name := range svc.Registry().Names(category.KindIncome) {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "Expenses:")
			for _, name := range svc.Registry().Names(category.KindExpense) {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
