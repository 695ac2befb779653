package review

import (
	"fmt"

	"github.com/mshelton/loupe/internal/language"
)

// validate checks a unit before any analyzer runs. Checks run in order:
// code present, extension supported, size within limit. It returns the
// detected language on success.
func validate(unit Unit, maxFileSizeMB int) (string, error) {
	if unit.Code == "" {
		return "", fmt.Errorf("no code provided")
	}

	lang, ok := language.Detect(unit.Extension)
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", unit.Extension)
	}

	if len(unit.Code) > maxFileSizeMB<<20 {
		return "", fmt.Errorf("file size exceeds the maximum limit of %dMB", maxFileSizeMB)
	}

	return lang, nil
}
