package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"nwlint/internal/lint"
	"nwlint/internal/runner"
)

//go:embed report.schema.json
var schemaSource []byte

const schemaURL = "report.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type jsonReport struct {
	Files   []jsonFile     `json:"files"`
	Summary runner.Summary `json:"summary"`
}

type jsonFile struct {
	Path     string         `json:"path"`
	Error    string         `json:"error,omitempty"`
	Findings []lint.Finding `json:"findings"`
}

// JSONWriter emits the whole run as one JSON document, checked against the
// embedded report schema before anything is written.
type JSONWriter struct {
	out io.Writer
}

func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

func (w *JSONWriter) Write(results []runner.FileResult) error {
	doc := jsonReport{
		Files:   make([]jsonFile, 0, len(results)),
		Summary: runner.Summarize(results),
	}
	for _, res := range results {
		f := jsonFile{Path: res.Path, Findings: res.Findings}
		if f.Findings == nil {
			f.Findings = []lint.Finding{}
		}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		doc.Files = append(doc.Files, f)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := validate(raw); err != nil {
		return err
	}

	_, err = w.out.Write(append(raw, '\n'))
	return err
}

func validate(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile report schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize report for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
