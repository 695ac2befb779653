package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/mshelton/loupe/internal/repo"
	"github.com/mshelton/loupe/internal/review"
)

// RenderMarkdown converts a repository analysis into a markdown report.
func RenderMarkdown(analysis *repo.Analysis) string {
	if analysis == nil || analysis.Status != "success" {
		return "# Code Review Report\n\nNo valid analysis data provided.\n"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("# Code Review Report — %s", analysis.Repository))
	lines = append(lines, "")
	lines = append(lines, "## Repository Info")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("- **Repository**: `%s`", analysis.Repository))
	lines = append(lines, fmt.Sprintf("- **Branch**: `%s`", analysis.Branch))
	subdir := analysis.Subdirectory
	if subdir == "" {
		subdir = "(root)"
	}
	lines = append(lines, fmt.Sprintf("- **Subdirectory**: `%s`", subdir))
	lines = append(lines, fmt.Sprintf("- **Files analyzed**: %d / %d", analysis.FilesAnalyzed, analysis.FilesConsidered))
	lines = append(lines, "")

	if len(analysis.Structure.ExtensionCounts) > 0 {
		lines = append(lines, "### Extension Counts")
		for _, ec := range analysis.Structure.ExtensionCounts {
			lines = append(lines, fmt.Sprintf("- **%s**: %d", ec.Ext, ec.Count))
		}
		lines = append(lines, "")
	}

	if analysis.Structure.TreePreview != "" {
		lines = append(lines, "### Top-level Structure")
		lines = append(lines, "```")
		lines = append(lines, analysis.Structure.TreePreview)
		lines = append(lines, "```")
		lines = append(lines, "")
	}

	for _, item := range analysis.Results {
		lines = append(lines, fmt.Sprintf("## File: `%s` — %s", item.Path, strings.ToUpper(item.Status)))
		if item.Status != repo.StatusReviewed {
			reason := item.Reason
			if reason == "" {
				reason = item.Error
			}
			if reason == "" {
				reason = "Not reviewed"
			}
			lines = append(lines, "", "> "+reason, "")
			continue
		}
		lines = appendFileSections(lines, item.Result)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// SaveMarkdown renders the analysis and writes it to path.
func SaveMarkdown(analysis *repo.Analysis, path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(analysis)), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func appendFileSections(lines []string, st *review.State) []string {
	var results map[string]review.AnalysisResult
	var feedback string
	if st != nil {
		results = st.Results
		feedback = strings.TrimSpace(st.Feedback)
	}

	for _, name := range review.CanonicalAnalyzers {
		lines = append(lines, "### "+titleWord(name))
		lines = appendIssueSection(lines, results[name])
	}
	if feedback != "" {
		lines = append(lines, "### Reviewer Notes")
		lines = append(lines, feedback)
	}
	return append(lines, "")
}

func appendIssueSection(lines []string, result review.AnalysisResult) []string {
	if len(result.Issues) == 0 {
		return append(lines, "- **No issues found.**", "")
	}
	for i, issue := range result.Issues {
		title := issue.Title
		if title == "" {
			title = fmt.Sprintf("Issue %d", i+1)
		}
		sev := strings.ToUpper(string(issue.Severity))
		if sev == "" {
			sev = "MEDIUM"
		}
		lines = append(lines, fmt.Sprintf("- **[%s] %s**", sev, title))
		if desc := strings.TrimSpace(issue.Description); desc != "" {
			lines = append(lines, "  - "+desc)
		}
	}
	return append(lines, "")
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
