package repo

import (
	"encoding/json"
	"os"
	"strings"
)

// notebookCell is the slice of a Jupyter cell we care about. Source may be
// a string or a list of line fragments depending on the producing tool.
type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

// NotebookCode extracts the code cells of a Jupyter notebook and joins them
// with blank lines. Unparseable notebooks yield an empty string, which the
// batch driver treats as an unreadable file.
func NotebookCode(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var nb notebookDoc
	if err := json.Unmarshal(data, &nb); err != nil {
		return ""
	}

	var parts []string
	for _, cell := range nb.Cells {
		if cell.CellType != "code" {
			continue
		}
		if src := cellSource(cell.Source); src != "" {
			parts = append(parts, src)
		}
	}
	return strings.Join(parts, "\n\n")
}

func cellSource(raw json.RawMessage) string {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
