package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mshelton/loupe/internal/repo"
	"github.com/mshelton/loupe/internal/review"
)

// JSONWriter outputs the full review state as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, st *review.State) error {
	return writeJSON(w, st)
}

// WriteAnalysisJSON writes a repository analysis as indented JSON.
func WriteAnalysisJSON(w io.Writer, analysis *repo.Analysis) error {
	return writeJSON(w, analysis)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
