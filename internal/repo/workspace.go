package repo

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is an extracted repository archive on disk. It owns a temporary
// directory that Close removes; callers must defer Close on every path.
type Workspace struct {
	dir  string
	root string
}

// Unpack extracts zip bytes into a fresh temporary directory. GitHub
// zipballs wrap the tree in a single top-level folder, so the effective
// root is narrowed to the first extracted directory when one exists.
func Unpack(zipBytes []byte) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "loupe-repo-")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	if err := extractZip(zipBytes, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	ws := &Workspace{dir: dir, root: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("reading workspace: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			ws.root = filepath.Join(dir, entry.Name())
			break
		}
	}
	return ws, nil
}

// Root returns the effective root of the extracted tree.
func (w *Workspace) Root() string {
	return w.root
}

// Narrow moves the effective root down to subpath.
func (w *Workspace) Narrow(subpath string) error {
	candidate := filepath.Join(w.root, filepath.FromSlash(subpath))
	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("subdirectory %q not found in the repository archive", subpath)
	}
	w.root = candidate
	return nil
}

// Close removes the workspace directory and everything under it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

func extractZip(zipBytes []byte, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	for _, file := range zr.File {
		target := filepath.Join(dest, filepath.FromSlash(file.Name))
		// Reject entries that escape the destination.
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes the workspace", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", file.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Name, err)
		}
		if err := writeEntry(file, target); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", file.Name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("extracting %s: %w", file.Name, err)
	}
	return nil
}
