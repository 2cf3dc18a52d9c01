package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nwlint/internal/config"
	"nwlint/internal/rules"
	"nwlint/internal/runner"
	"nwlint/internal/storage"
)

// errFindings makes the process exit with status 1 without printing
// anything further.
var errFindings = errors.New("findings reported")

var (
	cfgFile string
	dbPath  string
	noCache bool
	verbose bool

	logger *logrus.Logger
	cfg    *config.Config

	rootCmd = &cobra.Command{
		Use:           "nwlint",
		Short:         "Structural style checks for Python sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logrus.New()
			logger.SetOutput(os.Stderr)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			} else {
				logger.SetLevel(logrus.WarnLevel)
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("db") {
				cfg.Cache.Path = dbPath
				cfg.Cache.Enabled = true
			}
			if noCache {
				cfg.Cache.Enabled = false
			}
			return nil
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", ".nwlint.db", "Path to the findings cache (SQLite); enables caching")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Disable the findings cache")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(rulesCmd)
}

// newRunner builds a runner from the loaded config. The returned store is
// nil when caching is off; callers close it when it is not.
func newRunner() (*runner.Runner, storage.FindingStore, error) {
	selected, err := rules.Select(cfg.Select, cfg.Ignore)
	if err != nil {
		return nil, nil, err
	}
	if len(selected) == 0 {
		return nil, nil, errors.New("no rules selected")
	}
	names := make([]string, len(selected))
	for i, r := range selected {
		names[i] = r.Code
	}
	logger.WithField("rules", names).Debug("Selected rules")

	var store storage.FindingStore
	if cfg.Cache.Enabled {
		s, err := storage.NewSQLiteStore(cfg.Cache.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
		store = s
	}

	return runner.New(selected, store, cfg.Workers, logger), store, nil
}

func hasFindings(results []runner.FileResult) bool {
	for _, res := range results {
		if len(res.Findings) > 0 || res.Err != nil {
			return true
		}
	}
	return false
}

func logSummary(results []runner.FileResult) {
	s := runner.Summarize(results)
	logger.WithFields(logrus.Fields{
		"files":    s.Files,
		"findings": s.Findings,
		"errors":   s.Errors,
		"cached":   s.Cached,
	}).Info("Check complete")
}
