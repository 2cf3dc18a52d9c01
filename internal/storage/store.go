package storage

import (
	"context"

	"nwlint/internal/lint"
)

// FindingStore caches the findings of a file for one content hash and rule
// selection, so unchanged files are not re-checked.
type FindingStore interface {
	// Lookup returns the cached findings for path. The boolean is false when
	// nothing is cached for this exact hash and ruleset.
	Lookup(ctx context.Context, path, hash, ruleset string) ([]lint.Finding, bool, error)

	// Save replaces whatever is cached for path.
	Save(ctx context.Context, path, hash, ruleset string, findings []lint.Finding) error

	// Prune drops every cached file not listed in keep and returns how many
	// were removed.
	Prune(ctx context.Context, keep []string) (int64, error)

	Close() error
}
