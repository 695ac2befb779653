// Package language maps file extensions to the languages loupe can review.
package language

import "strings"

// table is the closed set of reviewable extensions. Extensions are stored
// without a leading dot, lowercase.
var table = map[string]string{
	"py":   "python",
	"js":   "javascript",
	"ts":   "typescript",
	"java": "java",
	"go":   "go",
}

// Detect resolves a file extension to its language name. The extension may
// carry a leading dot and any casing. ok is false for unknown extensions;
// there is no default language.
func Detect(ext string) (lang string, ok bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	lang, ok = table[ext]
	return lang, ok
}

// Supported returns the set of reviewable extensions, without dots.
func Supported() []string {
	exts := make([]string, 0, len(table))
	for ext := range table {
		exts = append(exts, ext)
	}
	return exts
}
