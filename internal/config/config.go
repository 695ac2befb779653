package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/mshelton/loupe/internal/logging"
)

// AnalyzerConfig controls one analysis category.
type AnalyzerConfig struct {
	Enabled  bool   `json:"enabled"`
	Severity string `json:"severity"`
}

// PrivacyConfig controls redaction of code before it is sent to a provider.
type PrivacyConfig struct {
	RedactSecrets bool `json:"redactSecrets"`
}

// Config represents the loupe configuration.
type Config struct {
	Provider          string                    `json:"provider"`
	Model             string                    `json:"model"`
	MaxFileSizeMB     int                       `json:"maxFileSizeMB"`
	MaxFilesPerRepo   int                       `json:"maxFilesPerRepo"`
	IncludeExtensions []string                  `json:"includeExtensions"`
	PromptsFile       string                    `json:"promptsFile,omitempty"`
	Analyzers         map[string]AnalyzerConfig `json:"analyzers"`
	Privacy           PrivacyConfig             `json:"privacy"`
	Log               logging.Options           `json:"log"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:          "anthropic",
		Model:             "claude-sonnet-4-20250514",
		MaxFileSizeMB:     10,
		MaxFilesPerRepo:   20,
		IncludeExtensions: []string{".py", ".ipynb"},
		Analyzers: map[string]AnalyzerConfig{
			"security":        {Enabled: true, Severity: "high"},
			"maintainability": {Enabled: true, Severity: "medium"},
			"style":           {Enabled: true, Severity: "low"},
		},
		Privacy: PrivacyConfig{RedactSecrets: true},
		Log:     logging.Options{Level: "info", Format: "text", Output: "stderr"},
	}
}

// MaxFileSizeBytes returns the unit size limit in bytes.
func (c Config) MaxFileSizeBytes() int {
	return c.MaxFileSizeMB << 20
}

// ConfigDir returns the platform-appropriate config directory for loupe.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loupe"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "loupe"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "loupe"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "loupe"), nil
	default:
		return filepath.Join(home, ".config", "loupe"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.MaxFileSizeMB > 0 {
		dst.MaxFileSizeMB = src.MaxFileSizeMB
	}
	if src.MaxFilesPerRepo > 0 {
		dst.MaxFilesPerRepo = src.MaxFilesPerRepo
	}
	if len(src.IncludeExtensions) > 0 {
		dst.IncludeExtensions = src.IncludeExtensions
	}
	if src.PromptsFile != "" {
		dst.PromptsFile = src.PromptsFile
	}
	// Analyzer entries present in the file replace the defaults per key; an
	// entry with enabled=false is an explicit opt-out.
	for name, ac := range src.Analyzers {
		if ac.Severity == "" {
			if def, ok := dst.Analyzers[name]; ok {
				ac.Severity = def.Severity
			} else {
				ac.Severity = "medium"
			}
		}
		dst.Analyzers[name] = ac
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
	if src.Log.Output != "" {
		dst.Log.Output = src.Log.Output
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("LOUPE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("LOUPE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LOUPE_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("LOUPE_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFilesPerRepo = n
		}
	}
	if v := os.Getenv("LOUPE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["maxFileSizeMB"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFileSizeMB = n
		}
	}
	if v, ok := overrides["maxFilesPerRepo"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFilesPerRepo = n
		}
	}
	if v, ok := overrides["includeExtensions"]; ok && v != "" {
		cfg.IncludeExtensions = SplitExtensions(v)
	}
	if v, ok := overrides["promptsFile"]; ok && v != "" {
		cfg.PromptsFile = v
	}
}

// SplitExtensions parses a comma-separated extension list, normalizing each
// entry to lowercase with a leading dot.
func SplitExtensions(csv string) []string {
	var exts []string
	for _, e := range strings.Split(csv, ",") {
		e = strings.TrimSpace(strings.ToLower(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "maxFileSizeMB":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFileSizeMB must be an integer: %w", err)
		}
		cfg.MaxFileSizeMB = n
	case "maxFilesPerRepo":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFilesPerRepo must be an integer: %w", err)
		}
		cfg.MaxFilesPerRepo = n
	case "includeExtensions":
		cfg.IncludeExtensions = SplitExtensions(value)
	case "promptsFile":
		cfg.PromptsFile = value
	case "log.level":
		cfg.Log.Level = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
