package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNotebookCode(t *testing.T) {
	nb := `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n"]},
    {"cell_type": "code", "source": ["import os\n", "print(os.getcwd())"]},
    {"cell_type": "code", "source": "x = 1"},
    {"cell_type": "raw", "source": ["ignored"]}
  ]
}`
	path := filepath.Join(t.TempDir(), "demo.ipynb")
	if err := os.WriteFile(path, []byte(nb), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := NotebookCode(path)
	want := "import os\nprint(os.getcwd())\n\nx = 1"
	if got != want {
		t.Errorf("NotebookCode = %q, want %q", got, want)
	}
}

func TestNotebookCode_NoCodeCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "md.ipynb")
	os.WriteFile(path, []byte(`{"cells": [{"cell_type": "markdown", "source": ["hi"]}]}`), 0o644)

	if got := NotebookCode(path); got != "" {
		t.Errorf("NotebookCode = %q, want empty", got)
	}
}

func TestNotebookCode_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ipynb")
	os.WriteFile(path, []byte("not json"), 0o644)

	if got := NotebookCode(path); got != "" {
		t.Errorf("NotebookCode = %q, want empty", got)
	}
}

func TestNotebookCode_MissingFile(t *testing.T) {
	if got := NotebookCode(filepath.Join(t.TempDir(), "nope.ipynb")); got != "" {
		t.Errorf("NotebookCode = %q, want empty", got)
	}
}
