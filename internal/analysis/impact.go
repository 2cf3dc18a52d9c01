package analysis

import (
	"path/filepath"

	"nwlint/internal/git"
	"nwlint/internal/lint"
	"nwlint/internal/runner"
)

// RestrictToChanges keeps only the findings reported on lines the diff added
// or modified. Files outside the diff are dropped; per-file errors on changed
// files are kept so they still surface.
func RestrictToChanges(results []runner.FileResult, changes []git.ChangedFile) []runner.FileResult {
	byPath := make(map[string]git.ChangedFile, len(changes))
	for _, c := range changes {
		byPath[filepath.Clean(c.Path)] = c
	}

	out := make([]runner.FileResult, 0, len(results))
	for _, res := range results {
		change, ok := byPath[filepath.Clean(res.Path)]
		if !ok {
			continue
		}

		kept := make([]lint.Finding, 0, len(res.Findings))
		for _, f := range res.Findings {
			if isAffected(f, change) {
				kept = append(kept, f)
			}
		}
		res.Findings = kept
		out = append(out, res)
	}
	return out
}

func isAffected(f lint.Finding, change git.ChangedFile) bool {
	return change.Contains(f.Line)
}
