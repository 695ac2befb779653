package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mshelton/loupe/internal/review"
)

// TextWriter outputs a human-readable colored review.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, st *review.State) error {
	ew := &errWriter{w: w}

	bold := color.New(color.Bold)
	ew.println(bold.Sprintf("Loupe Code Review — %s", st.Unit.Language))
	ew.println(strings.Repeat("─", 60))

	if st.Status == review.StatusErrored {
		ew.printf("%s %s\n", color.RedString("✗"), st.Error)
		return ew.err
	}

	for _, name := range orderedResultNames(st.Results) {
		result := st.Results[name]
		ew.printf("\n%s\n", bold.Sprint(strings.ToUpper(name)))
		ew.println(strings.Repeat("─", 40))

		if len(result.Issues) == 0 {
			ew.printf("  %s %s\n", color.GreenString("✓"), result.Summary)
			continue
		}
		for _, issue := range result.Issues {
			ew.printf("\n  %s %s\n", severityLabel(issue.Severity), issue.Title)
			for _, line := range strings.Split(strings.TrimSpace(issue.Description), "\n") {
				ew.printf("    %s\n", line)
			}
			if issue.Suggestion != "" {
				ew.println("  Suggestion:")
				for _, line := range strings.Split(strings.TrimSpace(issue.Suggestion), "\n") {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	if st.Feedback != "" {
		ew.printf("\n%s\n", strings.Repeat("─", 60))
		ew.println(st.Feedback)
	}
	return ew.err
}

func severityLabel(s review.Severity) string {
	label := "[" + strings.ToUpper(string(s)) + "]"
	switch s {
	case review.SeverityHigh:
		return color.RedString(label)
	case review.SeverityMedium:
		return color.YellowString(label)
	case review.SeverityLow:
		return color.CyanString(label)
	default:
		return label
	}
}

// orderedResultNames returns the canonical analyzer order, then any extra
// keys sorted by name.
func orderedResultNames(results map[string]review.AnalysisResult) []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range review.CanonicalAnalyzers {
		if _, ok := results[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range results {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// errWriter collects the first write error so formatting code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, args...)
}
