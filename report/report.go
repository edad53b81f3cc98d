// Package report renders evaluation results as aligned text tables, JSON
// documents and CSV series.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// errWriter remembers the first write error so table code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Document is the top-level JSON document written by the CLI.
type Document struct {
	RunID   string `json:"run_id"`
	Results any    `json:"results"`
}

// NewDocument wraps results under runID, generating a random ID when runID
// is empty.
func NewDocument(runID string, results any) Document {
	if runID == "" {
		runID = uuid.NewString()
	}
	return Document{RunID: runID, Results: results}
}
