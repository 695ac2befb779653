package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// previewChildCap bounds how many children of each top-level directory the
// tree preview lists.
const previewChildCap = 20

// ExtensionCount is one extension histogram entry. The summary keeps these
// in a slice so the order (count descending, then name) survives JSON.
type ExtensionCount struct {
	Ext   string `json:"ext"`
	Count int    `json:"count"`
}

// Summary describes the shape of an extracted repository tree.
type Summary struct {
	TotalFiles      int                       `json:"total_files"`
	ByDirectory     map[string]map[string]int `json:"by_directory_extensions"`
	ExtensionCounts []ExtensionCount          `json:"extension_counts"`
	TreePreview     string                    `json:"top_level_tree"`
}

// Summarize walks the tree under root and builds per-directory and global
// extension histograms plus a two-level tree preview. Files without an
// extension are counted under "<noext>".
func Summarize(root string) (Summary, error) {
	sum := Summary{ByDirectory: make(map[string]map[string]int)}
	extCounts := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(rel)

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == "" {
			ext = "<noext>"
		}

		if sum.ByDirectory[dir] == nil {
			sum.ByDirectory[dir] = make(map[string]int)
		}
		sum.ByDirectory[dir][ext]++
		extCounts[ext]++
		sum.TotalFiles++
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing repository structure: %w", err)
	}

	for ext, count := range extCounts {
		sum.ExtensionCounts = append(sum.ExtensionCounts, ExtensionCount{Ext: ext, Count: count})
	}
	sort.Slice(sum.ExtensionCounts, func(i, j int) bool {
		a, b := sum.ExtensionCounts[i], sum.ExtensionCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Ext < b.Ext
	})

	preview, err := treePreview(root)
	if err != nil {
		return Summary{}, err
	}
	sum.TreePreview = preview
	return sum, nil
}

// treePreview renders the top two levels of the tree: top-level files by
// name, top-level directories as "/name/" with their first children
// indented beneath them.
func treePreview(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("reading repository root: %w", err)
	}

	var lines []string
	for _, entry := range entries {
		if !entry.IsDir() {
			lines = append(lines, entry.Name())
			continue
		}
		lines = append(lines, "/"+entry.Name()+"/")

		children, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		for i, child := range children {
			if i >= previewChildCap {
				break
			}
			if child.IsDir() {
				lines = append(lines, "  - "+child.Name()+"/")
			} else {
				lines = append(lines, "  - "+child.Name())
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
