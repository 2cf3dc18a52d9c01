package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nwlint/internal/crawler"
	"nwlint/internal/report"
	"nwlint/internal/runner"
)

var (
	outputFormat string
	prune        bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check Python files and directories (default: current directory)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			args = []string{"."}
		}

		paths, err := crawler.NewCrawler(cfg.Exclude).Collect(args)
		if err != nil {
			return err
		}
		logger.WithField("files", len(paths)).Debug("Collected files")

		r, store, err := newRunner()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		results, err := r.CheckFiles(ctx, paths)
		if err != nil {
			return err
		}

		if prune && store != nil {
			n, err := store.Prune(ctx, paths)
			if err != nil {
				logger.WithError(err).Warn("Failed to prune cache")
			} else {
				logger.WithField("removed", n).Debug("Pruned cache")
			}
		}

		return emit(results)
	},
}

func init() {
	checkCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (overrides config)")
	checkCmd.Flags().BoolVar(&prune, "prune", false, "Drop cache entries for files not checked in this run")
	diffCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (overrides config)")
}

func emit(results []runner.FileResult) error {
	format := cfg.Format
	if outputFormat != "" {
		format = outputFormat
	}

	colored := !color.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
	w, err := report.New(format, os.Stdout, colored)
	if err != nil {
		return err
	}
	if err := w.Write(results); err != nil {
		return err
	}

	logSummary(results)
	if hasFindings(results) {
		return errFindings
	}
	return nil
}
