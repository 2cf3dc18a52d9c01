package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"nwlint/internal/lint"
)

type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

type fileRow struct {
	Path        string `db:"path"`
	ContentHash string `db:"content_hash"`
	Ruleset     string `db:"ruleset"`
	CheckedAt   int64  `db:"checked_at"`
}

type findingRow struct {
	Line    int    `db:"line"`
	Column  int    `db:"col"`
	RuleID  string `db:"rule"`
	Message string `db:"message"`
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}
	// Writers are serialized by SQLite anyway; one connection avoids
	// "database is locked" under parallel checks.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			ruleset TEXT NOT NULL,
			checked_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS findings (
			path TEXT NOT NULL REFERENCES files(path) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			line INTEGER NOT NULL,
			col INTEGER NOT NULL,
			rule TEXT NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (path, seq)
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, path, hash, ruleset string) ([]lint.Finding, bool, error) {
	var f fileRow
	err := s.db.GetContext(ctx, &f, `SELECT path, content_hash, ruleset, checked_at FROM files WHERE path = ?`, path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", path, err)
	}
	if f.ContentHash != hash || f.Ruleset != ruleset {
		return nil, false, nil
	}

	var rows []findingRow
	err = s.db.SelectContext(ctx, &rows, `SELECT line, col, rule, message FROM findings WHERE path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, false, fmt.Errorf("load findings for %s: %w", path, err)
	}

	findings := make([]lint.Finding, 0, len(rows))
	for _, r := range rows {
		findings = append(findings, lint.Finding{Line: r.Line, Column: r.Column, RuleID: r.RuleID, Message: r.Message})
	}
	return findings, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, path, hash, ruleset string, findings []lint.Finding) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clear findings for %s: %w", path, err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO files (path, content_hash, ruleset, checked_at)
		VALUES (:path, :content_hash, :ruleset, :checked_at)
		ON CONFLICT(path) DO UPDATE SET
			content_hash=excluded.content_hash,
			ruleset=excluded.ruleset,
			checked_at=excluded.checked_at
	`, fileRow{Path: path, ContentHash: hash, Ruleset: ruleset, CheckedAt: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("save file %s: %w", path, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO findings (path, seq, line, col, rule, message) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range findings {
		if _, err := stmt.ExecContext(ctx, path, i, f.Line, f.Column, f.RuleID, f.Message); err != nil {
			return fmt.Errorf("save finding for %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"findings": len(findings),
	}).Debug("Cached findings")
	return nil
}

func (s *SQLiteStore) Prune(ctx context.Context, keep []string) (int64, error) {
	query, args := `DELETE FROM files`, []interface{}{}
	if len(keep) > 0 {
		var err error
		query, args, err = sqlx.In(`DELETE FROM files WHERE path NOT IN (?)`, keep)
		if err != nil {
			return 0, err
		}
		query = s.db.Rebind(query)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}
