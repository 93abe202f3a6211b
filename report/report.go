// Package report records the outcome of a generator run
// and writes it as JSON.
package report

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/workflowgen/templating"
)

// Failure is a template that could not be processed.
type Failure struct {
	Template string `json:"template"`
	Error    string `json:"error"`
}

// Report collects per-template results of one run.
type Report struct {
	Mode        string              `json:"mode"`
	Documents   []templating.Result `json:"documents"`
	FailedCount int                 `json:"failed"`
	Failures    []Failure           `json:"failures,omitempty"`
}

// New returns an empty report for mode, e.g. "generate".
func New(mode string) *Report {
	return &Report{
		Mode:      mode,
		Documents: []templating.Result{},
	}
}

// Add records the outcome of processing one template. A
// drifted result is recorded both as a document and as a
// failure.
func (re *Report) Add(res templating.Result, err error) {
	if res.Output != "" && res.Digest != "" {
		re.Documents = append(re.Documents, res)
	}

	if err != nil {
		re.Failures = append(re.Failures, Failure{
			Template: res.Template,
			Error:    err.Error(),
		})
		re.FailedCount = len(re.Failures)
	}
}

// Failed reports whether any template failed.
func (re *Report) Failed() bool {
	return len(re.Failures) > 0
}

// Count returns the number of documents with status st.
func (re *Report) Count(st templating.Status) int {
	var nb int

	for _, doc := range re.Documents {
		if doc.Status == st {
			nb++
		}
	}

	return nb
}

// Write encodes the report as indented JSON to w.
func (re *Report) Write(w io.Writer) error {
	const errCtx = "writing report"

	buf, err := json.MarshalIndent(re, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	buf = append(buf, '\n')

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// WriteFile writes the report to path, or to stdout when
// path is "-".
func (re *Report) WriteFile(path string) error {
	if path == "-" {
		return re.Write(os.Stdout)
	}

	fo, err := os.Create(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := re.Write(fo); err != nil {
		_ = fo.Close() //nolint:errcheck // write error wins

		return err
	}

	if err := fo.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
