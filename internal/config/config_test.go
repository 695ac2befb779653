package config

import (
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.MaxFileSizeMB != 10 {
		t.Errorf("MaxFileSizeMB = %d, want 10", cfg.MaxFileSizeMB)
	}
	if cfg.MaxFilesPerRepo != 20 {
		t.Errorf("MaxFilesPerRepo = %d, want 20", cfg.MaxFilesPerRepo)
	}
	if got := cfg.MaxFileSizeBytes(); got != 10<<20 {
		t.Errorf("MaxFileSizeBytes() = %d, want %d", got, 10<<20)
	}
	for _, name := range []string{"security", "maintainability", "style"} {
		ac, ok := cfg.Analyzers[name]
		if !ok {
			t.Fatalf("default config missing analyzer %q", name)
		}
		if !ac.Enabled {
			t.Errorf("analyzer %q disabled by default", name)
		}
	}
}

func TestMergeFile(t *testing.T) {
	cfg := Default()
	mergeFile(&cfg, Config{
		Model:           "gpt-4o",
		MaxFilesPerRepo: 5,
		Analyzers: map[string]AnalyzerConfig{
			"style": {Enabled: false},
		},
	})

	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.MaxFilesPerRepo != 5 {
		t.Errorf("MaxFilesPerRepo = %d, want 5", cfg.MaxFilesPerRepo)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want default preserved", cfg.Provider)
	}
	if cfg.Analyzers["style"].Enabled {
		t.Error("style analyzer should be disabled after merge")
	}
	if cfg.Analyzers["style"].Severity != "low" {
		t.Errorf("style severity = %q, want default low filled in", cfg.Analyzers["style"].Severity)
	}
	if !cfg.Analyzers["security"].Enabled {
		t.Error("security analyzer should remain enabled")
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("LOUPE_PROVIDER", "ollama")
	t.Setenv("LOUPE_MAX_FILES", "7")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", cfg.Provider)
	}
	if cfg.MaxFilesPerRepo != 7 {
		t.Errorf("MaxFilesPerRepo = %d, want 7", cfg.MaxFilesPerRepo)
	}
}

func TestSplitExtensions(t *testing.T) {
	got := SplitExtensions("py, .GO ,,ts")
	want := []string{".py", ".go", ".ts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitExtensions = %v, want %v", got, want)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	if err := SetField(&cfg, "maxFilesPerRepo", "3"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if cfg.MaxFilesPerRepo != 3 {
		t.Errorf("MaxFilesPerRepo = %d, want 3", cfg.MaxFilesPerRepo)
	}

	if err := SetField(&cfg, "maxFileSizeMB", "notanumber"); err == nil {
		t.Error("expected error for non-integer maxFileSizeMB")
	}
	if err := SetField(&cfg, "bogus", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}
