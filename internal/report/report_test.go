package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nwlint/internal/lint"
	"nwlint/internal/runner"
)

func sampleResults() []runner.FileResult {
	return []runner.FileResult{
		{Path: "app/models.py", Findings: []lint.Finding{
			{Line: 3, Column: 4, RuleID: "NWL104", Message: "NWL104 required an empty line before If statement"},
			{Line: 7, Column: 0, RuleID: "NWL102", Message: "NWL102 Non builtin positional function call detected. Pass the call with keyword arguments"},
		}},
		{Path: "app/clean.py", Cached: true},
		{Path: "app/broken.py", Err: errors.New("syntax error at line 1, column 7")},
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf, false).Write(sampleResults()))

	want := "app/models.py:3:5: NWL104 required an empty line before If statement\n" +
		"app/models.py:7:1: NWL102 Non builtin positional function call detected. Pass the call with keyword arguments\n" +
		"app/broken.py: error: syntax error at line 1, column 7\n"
	assert.Equal(t, want, buf.String())
}

func TestTextWriter_Colored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf, true).Write(sampleResults()[:1]))

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, ":3:5: ")
	assert.Contains(t, out, "required an empty line before If statement")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(sampleResults()))

	var doc struct {
		Files []struct {
			Path     string `json:"path"`
			Error    string `json:"error"`
			Findings []struct {
				Line    int    `json:"line"`
				Column  int    `json:"column"`
				Rule    string `json:"rule"`
				Message string `json:"message"`
			} `json:"findings"`
		} `json:"files"`
		Summary runner.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Files, 3)
	assert.Equal(t, "app/models.py", doc.Files[0].Path)
	require.Len(t, doc.Files[0].Findings, 2)
	assert.Equal(t, 3, doc.Files[0].Findings[0].Line)
	assert.Equal(t, 4, doc.Files[0].Findings[0].Column, "json keeps the 0-based column")
	assert.Equal(t, "NWL104", doc.Files[0].Findings[0].Rule)
	assert.NotNil(t, doc.Files[1].Findings)
	assert.Equal(t, "syntax error at line 1, column 7", doc.Files[2].Error)

	assert.Equal(t, runner.Summary{Files: 3, Findings: 2, Errors: 1, Cached: 1}, doc.Summary)
	assert.Contains(t, buf.String(), `"findings": []`)
}

func TestJSONWriter_RejectsInvalidReport(t *testing.T) {
	var buf bytes.Buffer
	results := []runner.FileResult{{Path: "a.py", Findings: []lint.Finding{{Line: 0, RuleID: "bogus", Message: "x"}}}}

	err := NewJSONWriter(&buf).Write(results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Zero(t, buf.Len())
}

func TestNew(t *testing.T) {
	w, err := New("text", &bytes.Buffer{}, false)
	require.NoError(t, err)
	assert.IsType(t, &TextWriter{}, w)

	w, err = New("json", &bytes.Buffer{}, false)
	require.NoError(t, err)
	assert.IsType(t, &JSONWriter{}, w)

	_, err = New("xml", &bytes.Buffer{}, false)
	assert.Error(t, err)
}
