package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nwlint/internal/lint"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache", "nwlint.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SaveAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	findings := []lint.Finding{
		{Line: 3, Column: 4, RuleID: "NWL104", Message: "NWL104 required an empty line before If statement"},
		{Line: 1, Column: 0, RuleID: "NWL102", Message: "NWL102 Non builtin positional function call detected. Pass the call with keyword arguments"},
	}
	require.NoError(t, s.Save(ctx, "app.py", "h1", "NWL102,NWL104", findings))

	t.Run("hit keeps discovery order", func(t *testing.T) {
		got, ok, err := s.Lookup(ctx, "app.py", "h1", "NWL102,NWL104")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, findings, got)
	})

	t.Run("content changed", func(t *testing.T) {
		_, ok, err := s.Lookup(ctx, "app.py", "h2", "NWL102,NWL104")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rule selection changed", func(t *testing.T) {
		_, ok, err := s.Lookup(ctx, "app.py", "h1", "NWL102")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown file", func(t *testing.T) {
		_, ok, err := s.Lookup(ctx, "other.py", "h1", "NWL102,NWL104")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Save(ctx, "app.py", "h1", "all", []lint.Finding{{Line: 1, RuleID: "NWL100"}, {Line: 2, RuleID: "NWL100"}}))
	require.NoError(t, s.Save(ctx, "app.py", "h2", "all", nil))

	got, ok, err := s.Lookup(ctx, "app.py", "h2", "all")
	require.NoError(t, err)
	require.True(t, ok, "a clean file is cached too")
	assert.Empty(t, got)
}

func TestSQLiteStore_Prune(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, p := range []string{"a.py", "b.py", "c.py"} {
		require.NoError(t, s.Save(ctx, p, "h", "all", []lint.Finding{{Line: 1, RuleID: "NWL100"}}))
	}

	n, err := s.Prune(ctx, []string{"b.py"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err := s.Lookup(ctx, "a.py", "h", "all")
	require.NoError(t, err)
	assert.False(t, ok)
	got, ok, err := s.Lookup(ctx, "b.py", "h", "all")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got, 1)

	n, err = s.Prune(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
