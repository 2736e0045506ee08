package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/currency"
)

var titleCaser = cases.Title(language.English)

func newIncomeCommand(opts *options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "income <amount>",
		Short: "Record an income amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, opts, category.KindIncome, name, args[0])
		},
	}

	cmd.Flags().StringVarP(&name, "category", "c", "", "income category (default: first registry category)")
	return cmd
}

func newExpenseCommand(opts *options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "expense <amount>",
		Short: "Record an expense amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, opts, category.KindExpense, name, args[0])
		},
	}

	cmd.Flags().StringVarP(&name, "category", "c", "", "expense category (default: first registry category)")
	return cmd
}

func runSubmit(cmd *cobra.Command, opts *options, kind category.Kind, name, amount string) error {
	svc, cfg, err := opts.newService()
	if err != nil {
		return err
	}

	if name == "" {
		names := svc.Registry().Names(kind)
		if len(names) == 0 {
			return fmt.Errorf("no %s categories configured", kind.Label())
		}
		name = names[0]
	}

	res, err := svc.Submit(kind, name, amount)
	printNotices(cmd, res.Load)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s added successfully. %s total: %s\n",
		titleCaser.String(kind.Label()), name, currency.Format(res.NewTotal, cfg.Currency))
	return nil
}
