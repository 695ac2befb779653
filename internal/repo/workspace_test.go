package repo

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildZip assembles an in-memory zip from path/content pairs. Paths ending
// in "/" become directory entries.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		if strings.HasSuffix(name, "/") {
			if _, err := zw.Create(name); err != nil {
				t.Fatalf("creating dir entry %s: %v", name, err)
			}
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestUnpack_NarrowsToWrapperDir(t *testing.T) {
	data := buildZip(t, map[string]string{
		"repo-main/main.py":     "print('hi')",
		"repo-main/src/util.py": "x = 1",
	})

	ws, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	defer ws.Close()

	if filepath.Base(ws.Root()) != "repo-main" {
		t.Errorf("root = %q, want the wrapper directory", ws.Root())
	}
	if _, err := os.Stat(filepath.Join(ws.Root(), "main.py")); err != nil {
		t.Errorf("main.py not extracted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws.Root(), "src", "util.py")); err != nil {
		t.Errorf("src/util.py not extracted: %v", err)
	}
}

func TestWorkspace_Narrow(t *testing.T) {
	data := buildZip(t, map[string]string{
		"repo-main/src/app.py": "pass",
	})

	ws, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	defer ws.Close()

	if err := ws.Narrow("src"); err != nil {
		t.Fatalf("Narrow(src): %v", err)
	}
	if filepath.Base(ws.Root()) != "src" {
		t.Errorf("root = %q after narrowing", ws.Root())
	}

	err = ws.Narrow("missing")
	if err == nil {
		t.Fatal("Narrow(missing) should fail")
	}
	want := `subdirectory "missing" not found in the repository archive`
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err, want)
	}
}

func TestWorkspace_CloseRemovesDirectory(t *testing.T) {
	data := buildZip(t, map[string]string{"repo-main/a.py": "pass"})

	ws, err := Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	dir := ws.dir

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("workspace directory %s still exists after Close", dir)
	}
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../evil.txt")
	if err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	w.Write([]byte("nope"))
	zw.Close()

	if _, err := Unpack(buf.Bytes()); err == nil {
		t.Fatal("expected error for entry escaping the workspace")
	}
}

func TestUnpack_InvalidZip(t *testing.T) {
	if _, err := Unpack([]byte("not a zip")); err == nil {
		t.Fatal("expected error for invalid archive bytes")
	}
}
