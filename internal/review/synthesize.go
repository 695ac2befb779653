package review

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mshelton/loupe/internal/llm"
)

// Synthesizer combines per-analyzer results into one narrative review.
type Synthesizer struct {
	gen    llm.Generator
	prompt string
}

// NewSynthesizer creates a Synthesizer using the given backend and system prompt.
func NewSynthesizer(gen llm.Generator, prompt string) *Synthesizer {
	return &Synthesizer{gen: gen, prompt: prompt}
}

// Synthesize produces the narrative feedback for merged results. Backend
// failures and blank responses fall back to a deterministic rendering, so
// synthesis never fails the run.
func (s *Synthesizer) Synthesize(ctx context.Context, results map[string]AnalysisResult) string {
	if len(results) == 0 {
		return "No analysis results to synthesize"
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logrus.Warnf("cannot marshal analysis results, using fallback synthesis: %v", err)
		return Fallback(results)
	}

	resp, err := s.gen.Generate(ctx, llm.Request{
		System: s.prompt,
		Prompt: string(payload),
	})
	if err != nil {
		logrus.Warnf("synthesis backend call failed, using fallback synthesis: %v", err)
		return Fallback(results)
	}

	content := Sanitize(resp.Content)
	if content == "" {
		logrus.Warn("synthesis backend returned empty content, using fallback synthesis")
		return Fallback(results)
	}
	return content
}

// Sanitize strips known wrapper tokens from backend output and repairs the
// mangled triple-backtick sequences some models emit. Applying it to already
// clean text is a no-op.
func Sanitize(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "<s>", "")
	content = strings.ReplaceAll(content, "</s>", "")
	content = strings.ReplaceAll(content, "[OUT]", "")
	content = strings.ReplaceAll(content, "[/OUT]", "")

	// Repair escaped code fences
	content = strings.ReplaceAll(content, "`  ``", "```")
	content = strings.ReplaceAll(content, "` ``", "```")

	return strings.TrimSpace(content)
}

// Fallback renders merged results without a backend. It is a pure function:
// equal input yields byte-identical output on every call.
func Fallback(results map[string]AnalysisResult) string {
	if len(results) == 0 {
		return "## Code Review Summary\n\nNo analysis results available."
	}

	lines := []string{"# 📋 Code Review Summary\n"}

	for _, name := range orderedNames(results) {
		result := results[name]
		lines = append(lines, fmt.Sprintf("\n## %s Analysis\n", titleCase(name)))

		if len(result.Issues) == 0 {
			lines = append(lines, "✅ **No issues found in this category.**\n")
			continue
		}

		for _, issue := range result.Issues {
			sev := strings.ToUpper(string(issue.Severity))
			lines = append(lines, fmt.Sprintf("\n### %s %s [%s]\n", severityIcon(issue.Severity), issue.Title, sev))
			lines = append(lines, Sanitize(issue.Description)+"\n")

			if issue.Code != "" {
				lines = append(lines, fmt.Sprintf("\n**Problematic code:**\n```\n%s\n```\n", issue.Code))
			}
			if issue.Suggestion != "" {
				lines = append(lines, fmt.Sprintf("\n**Suggested fix:**\n```\n%s\n```\n", issue.Suggestion))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// orderedNames returns the canonical analyzer order, then any remaining
// keys sorted by name.
func orderedNames(results map[string]AnalysisResult) []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range CanonicalAnalyzers {
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

func severityIcon(s Severity) string {
	switch s {
	case SeverityHigh:
		return "🔴"
	case SeverityMedium:
		return "🟠"
	case SeverityLow:
		return "🔵"
	default:
		return "⚪"
	}
}
