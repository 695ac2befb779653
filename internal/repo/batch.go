package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mshelton/loupe/internal/config"
	"github.com/mshelton/loupe/internal/github"
	"github.com/mshelton/loupe/internal/llm"
	"github.com/mshelton/loupe/internal/review"
)

// Per-file outcome statuses.
const (
	StatusReviewed = "reviewed"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// FileResult is the outcome for one selected file.
type FileResult struct {
	Path   string        `json:"path"`
	Status string        `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
	Result *review.State `json:"result,omitempty"`
}

// Analysis is the full outcome of reviewing a repository.
type Analysis struct {
	Status             string       `json:"status"`
	Repository         string       `json:"repository"`
	Branch             string       `json:"branch"`
	Subdirectory       string       `json:"subdirectory"`
	Structure          Summary      `json:"structure_summary"`
	SelectedExtensions []string     `json:"selected_extensions"`
	FilesAnalyzed      int          `json:"files_analyzed"`
	FilesConsidered    int          `json:"files_considered"`
	Results            []FileResult `json:"results"`
}

// Options override per-run defaults taken from the configuration.
type Options struct {
	MaxFiles   int
	Extensions []string
	Branch     string
	Subdir     string
}

// archiveFetcher downloads a repository zipball and reports the branch
// that resolved.
type archiveFetcher interface {
	FetchArchive(ctx context.Context, loc github.Locator) ([]byte, string, error)
}

// Driver fetches a repository and reviews its selected files one at a time.
type Driver struct {
	cfg     config.Config
	fetcher archiveFetcher

	// reviewFn reviews one unit. Injectable so tests can exercise the
	// batch loop without a pipeline.
	reviewFn func(ctx context.Context, unit review.Unit) (*review.State, error)
}

// NewDriver builds a Driver whose per-file reviews run the full pipeline
// against gen.
func NewDriver(cfg config.Config, gen llm.Generator) (*Driver, error) {
	pipe, err := review.NewPipeline(cfg, gen)
	if err != nil {
		return nil, err
	}
	return &Driver{
		cfg:     cfg,
		fetcher: github.NewFetcher(),
		reviewFn: func(ctx context.Context, unit review.Unit) (st *review.State, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("review panic: %v", r)
				}
			}()
			return pipe.Run(ctx, unit), nil
		},
	}, nil
}

// Analyze downloads the repository at repoURL, narrows to any requested
// subdirectory, and reviews the selected files. Per-file failures are
// recorded in the results and never abort the batch; the workspace is
// removed before Analyze returns on every path.
func (d *Driver) Analyze(ctx context.Context, repoURL string, opts Options) (*Analysis, error) {
	loc, err := github.Parse(repoURL)
	if err != nil {
		return nil, err
	}
	if opts.Branch != "" {
		loc.Branch = opts.Branch
	}
	if opts.Subdir != "" {
		loc.Subpath = opts.Subdir
	}

	zipBytes, branch, err := d.fetcher.FetchArchive(ctx, loc)
	if err != nil {
		return nil, err
	}

	ws, err := Unpack(zipBytes)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	if loc.Subpath != "" {
		if err := ws.Narrow(loc.Subpath); err != nil {
			return nil, err
		}
	}

	structure, err := Summarize(ws.Root())
	if err != nil {
		return nil, err
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = d.cfg.IncludeExtensions
	}
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = d.cfg.MaxFilesPerRepo
	}

	files, err := SelectFiles(ws.Root(), exts, maxFiles)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"repository": loc.String(),
		"branch":     branch,
		"files":      len(files),
	}).Info("reviewing repository files")

	analysis := &Analysis{
		Status:             "success",
		Repository:         loc.String(),
		Branch:             branch,
		Subdirectory:       loc.Subpath,
		Structure:          structure,
		SelectedExtensions: exts,
		FilesConsidered:    len(files),
	}

	for _, path := range files {
		rel, err := filepath.Rel(ws.Root(), path)
		if err != nil {
			rel = path
		}
		result := d.reviewFile(ctx, path, filepath.ToSlash(rel))
		if result.Status == StatusReviewed {
			analysis.FilesAnalyzed++
		}
		analysis.Results = append(analysis.Results, result)
	}
	return analysis, nil
}

// reviewFile reads one file, applies the skip rules, and runs the review.
// Notebooks contribute only their code cells and are reviewed as Python.
func (d *Driver) reviewFile(ctx context.Context, path, rel string) FileResult {
	var code, ext string
	if strings.EqualFold(filepath.Ext(path), ".ipynb") {
		code = NotebookCode(path)
		ext = "py"
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileResult{Path: rel, Status: StatusSkipped, Reason: "empty or unreadable file"}
		}
		code = string(data)
		ext = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if ext == "" {
			ext = "txt"
		}
	}

	if strings.TrimSpace(code) == "" {
		return FileResult{Path: rel, Status: StatusSkipped, Reason: "empty or unreadable file"}
	}
	if len(code) > d.cfg.MaxFileSizeBytes() {
		reason := fmt.Sprintf("file exceeds size limit %dMB", d.cfg.MaxFileSizeMB)
		return FileResult{Path: rel, Status: StatusSkipped, Reason: reason}
	}

	st, err := d.reviewFn(ctx, review.Unit{Code: code, Extension: ext})
	if err != nil {
		logrus.WithError(err).WithField("path", rel).Warn("file review failed")
		return FileResult{Path: rel, Status: StatusError, Error: err.Error()}
	}
	return FileResult{Path: rel, Status: StatusReviewed, Result: st}
}
