package main

import (
	"os"

	"github.com/spf13/cobra"

	"nwlint/internal/analysis"
	"nwlint/internal/crawler"
	"nwlint/internal/git"
)

var baseRef string

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Check only the lines changed since a git revision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		changes, err := git.ChangedFiles(ctx, wd, baseRef)
		if err != nil {
			return err
		}

		var paths []string
		for _, c := range changes {
			if crawler.IsPython(c.Path) && len(c.Lines) > 0 {
				paths = append(paths, c.Path)
			}
		}
		logger.WithField("files", len(paths)).Debug("Changed Python files")
		if len(paths) == 0 {
			return emit(nil)
		}

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

		return emit(analysis.RestrictToChanges(results, changes))
	},
}

func init() {
	diffCmd.Flags().StringVar(&baseRef, "base", "HEAD", "Git revision to diff against")
}
