package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagExt = ""
	flagProvider = ""
	flagModel = ""
	flagFormat = ""
	flagOut = ""
	flagPrompts = ""
	flagNoRedact = false
	flagRepoBranch = ""
	flagRepoSubdir = ""
	flagRepoMaxFiles = 0
	flagRepoExt = ""
	flagRepoFormat = ""
	flagRepoOut = ""
	flagRepoReport = ""
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	flagProvider = "ollama"
	flagModel = "llama3"
	defer resetFlags()

	m := buildOverrides()
	if m["provider"] != "ollama" {
		t.Errorf("provider = %q", m["provider"])
	}
	if m["model"] != "llama3" {
		t.Errorf("model = %q", m["model"])
	}
	if _, ok := m["promptsFile"]; ok {
		t.Error("unset flags should not appear in overrides")
	}
}

func TestReadUnit_FromFile(t *testing.T) {
	resetFlags()
	defer resetFlags()

	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte("print('hi')"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	unit, err := readUnit([]string{path})
	if err != nil {
		t.Fatalf("readUnit: %v", err)
	}
	if unit.Code != "print('hi')" {
		t.Errorf("code = %q", unit.Code)
	}
	if unit.Extension != "py" {
		t.Errorf("extension = %q, want py", unit.Extension)
	}
}

func TestReadUnit_ExtFlagWins(t *testing.T) {
	resetFlags()
	flagExt = ".TS"
	defer resetFlags()

	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte("let x = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	unit, err := readUnit([]string{path})
	if err != nil {
		t.Fatalf("readUnit: %v", err)
	}
	if unit.Extension != "ts" {
		t.Errorf("extension = %q, want ts", unit.Extension)
	}
}

func TestReadUnit_MissingFile(t *testing.T) {
	resetFlags()
	defer resetFlags()

	if _, err := readUnit([]string{filepath.Join(t.TempDir(), "nope.py")}); err == nil {
		t.Error("expected error for missing file")
	}
}
