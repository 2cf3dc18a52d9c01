// Package runner checks many files in parallel and collects per-file
// results.
package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"nwlint/internal/lint"
	"nwlint/internal/pyparse"
	"nwlint/internal/storage"
)

// FileResult is the outcome of checking one file. Err is set when the file
// could not be read or parsed; such files carry no findings.
type FileResult struct {
	Path     string
	Findings []lint.Finding
	Err      error
	Cached   bool
}

// Summary totals a run.
type Summary struct {
	Files    int `json:"files"`
	Findings int `json:"findings"`
	Errors   int `json:"errors"`
	Cached   int `json:"cached"`
}

type Runner struct {
	parser  *pyparse.Parser
	rules   []*lint.Rule
	ruleset string
	store   storage.FindingStore
	workers int
	logger  *logrus.Logger
}

// New creates a runner. store may be nil to disable caching; workers <= 0
// means one per CPU.
func New(rules []*lint.Rule, store storage.FindingStore, workers int, logger *logrus.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	codes := make([]string, len(rules))
	for i, r := range rules {
		codes[i] = r.Code
	}
	return &Runner{
		parser:  pyparse.NewParser(),
		rules:   rules,
		ruleset: strings.Join(codes, ","),
		store:   store,
		workers: workers,
		logger:  logger,
	}
}

// CheckFiles checks every path and returns the results sorted by path. Read
// and syntax errors are recorded on the file's result; only context
// cancellation and cache failures abort the run.
func (r *Runner) CheckFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.workers, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.checkFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func (r *Runner) checkFile(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Path: path}
	log := r.logger.WithField("path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("Failed to read file")
		res.Err = fmt.Errorf("failed to read file: %w", err)
		return res, nil
	}

	sum := sha256.Sum256(src)
	hash := hex.EncodeToString(sum[:])

	if r.store != nil {
		findings, ok, err := r.store.Lookup(ctx, path, hash, r.ruleset)
		if err != nil {
			return res, fmt.Errorf("cache lookup for %s: %w", path, err)
		}
		if ok {
			log.Debug("Cache hit")
			res.Findings = findings
			res.Cached = true
			lint.SortFindings(res.Findings)
			return res, nil
		}
	}

	file, err := r.parser.ParseSource(ctx, path, src)
	if err != nil {
		if errors.Is(err, pyparse.ErrSyntax) {
			log.WithError(err).Warn("Skipping file with syntax errors")
			res.Err = err
			return res, nil
		}
		return res, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	res.Findings = lint.RunAll(r.rules, file.Tree, file.Lines)

	if r.store != nil {
		if err := r.store.Save(ctx, path, hash, r.ruleset, res.Findings); err != nil {
			return res, fmt.Errorf("cache save for %s: %w", path, err)
		}
	}

	lint.SortFindings(res.Findings)
	log.WithField("findings", len(res.Findings)).Debug("Checked file")
	return res, nil
}

// Summarize totals results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, res := range results {
		s.Findings += len(res.Findings)
		if res.Err != nil {
			s.Errors++
		}
		if res.Cached {
			s.Cached++
		}
	}
	return s
}
