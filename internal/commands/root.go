// Package commands defines the pftrack CLI. Running the bare command
// opens the interactive tracker; subcommands cover one-shot use.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pftrack-dev/pftrack/internal/buildinfo"
	"github.com/pftrack-dev/pftrack/internal/config"
	"github.com/pftrack-dev/pftrack/internal/store"
	"github.com/pftrack-dev/pftrack/internal/tracker"
	"github.com/pftrack-dev/pftrack/internal/tui"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "pftrack",
		Short:   "Personal income and expense tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := opts.newService()
			if err != nil {
				return err
			}
			return tui.Run(svc, cfg.Currency)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.file, "file", "", "summary file path (default: next to the executable)")
	pf.StringVar(&opts.configPath, "config", "", "config file path (default: pftrack.yaml next to the summary file)")
	pf.BoolVar(&opts.verbose, "verbose", false, "enable diagnostic logging")

	rootCmd.AddCommand(
		newIncomeCommand(opts),
		newExpenseCommand(opts),
		newReportCommand(opts),
		newCategoriesCommand(opts),
	)

	return rootCmd
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	file       string
	configPath string
	verbose    bool
}

// newService resolves config and flags into a wired tracker Service.
// Path precedence for the summary file: --file, then config data_file,
// then the program-derived default.
func (o *options) newService() (*tracker.Service, *config.Config, error) {
	defaultPath := store.DefaultPath()

	configPath := o.configPath
	if configPath == "" {
		configPath = filepath.Join(filepath.Dir(defaultPath), "pftrack.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	path := defaultPath
	if cfg.DataFile != "" {
		path = cfg.DataFile
	}
	if o.file != "" {
		path = o.file
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := cfg.Registry()
	st := store.New(path, reg, logger)
	svc := tracker.NewService(st, reg, activityPathFor(path), logger)
	return svc, cfg, nil
}

// activityPathFor derives the activity log path from the summary path:
// "pftrack_summary.json" -> "pftrack_activity.csv".
func activityPathFor(summaryPath string) string {
	base := strings.TrimSuffix(summaryPath, store.SummarySuffix)
	if base == summaryPath {
		base = strings.TrimSuffix(summaryPath, filepath.Ext(summaryPath))
	}
	return base + "_activity.csv"
}

// printNotices writes the load signals to stderr so they never mix with
// report output on stdout.
func printNotices(cmd *cobra.Command, res store.LoadResult) {
	for _, line := range res.Notices() {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
}
