package repo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// SelectFiles walks the tree under root in lexical order and returns paths
// whose extension is on the allow list, stopping once maxFiles are found.
// Extension matching is case-insensitive; a missing leading dot on an allow
// list entry is tolerated.
func SelectFiles(root string, includeExts []string, maxFiles int) ([]string, error) {
	allowed := make(map[string]bool, len(includeExts))
	for _, ext := range includeExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	var selected []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		selected = append(selected, path)
		if len(selected) >= maxFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("selecting files: %w", err)
	}
	return selected, nil
}
