package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/mshelton/loupe/internal/config"
	"github.com/mshelton/loupe/internal/llm"
)

// Analyzer inspects code for one category of issue. Name is the stable key
// the analyzer's result is merged under; no two analyzers share a name.
// Run never returns an error: backend failures are captured in the result.
type Analyzer interface {
	Name() string
	Run(ctx context.Context, code, lang string) AnalysisResult
}

// llmAnalyzer asks a generation backend to review code against a fixed
// system prompt for its category.
type llmAnalyzer struct {
	name     string
	prompt   string
	severity string
	gen      llm.Generator
}

func (a *llmAnalyzer) Name() string { return a.name }

func (a *llmAnalyzer) Run(ctx context.Context, code, lang string) AnalysisResult {
	system := renderPrompt(a.prompt, lang)
	if a.severity != "" {
		system += fmt.Sprintf("\n\nTreat findings in this category as %s severity by default.", a.severity)
	}

	resp, err := a.gen.Generate(ctx, llm.Request{
		System:      system,
		Prompt:      code,
		Temperature: 0.2,
	})
	if err != nil {
		return failedResult(a.name, err)
	}
	return wrapResponse(a.name, resp.Content)
}

// failedResult converts a backend failure into data so one analyzer's
// failure never aborts the run.
func failedResult(name string, err error) AnalysisResult {
	return AnalysisResult{
		Issues: []Issue{{
			Title:       fmt.Sprintf("%s analysis failed", titleCase(name)),
			Description: err.Error(),
			Severity:    SeverityHigh,
		}},
		Summary: fmt.Sprintf("%s analysis failed", name),
		Passed:  false,
	}
}

// wrapResponse turns the raw narrative into a structured result. A blank
// response means the analyzer found nothing.
func wrapResponse(name, text string) AnalysisResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return AnalysisResult{
			Issues:  []Issue{},
			Summary: fmt.Sprintf("No %s issues detected", name),
			Passed:  true,
		}
	}
	return AnalysisResult{
		Issues: []Issue{{
			Title:       fmt.Sprintf("%s Analysis", titleCase(name)),
			Description: text,
			Severity:    SeverityMedium,
		}},
		Summary: fmt.Sprintf("%s analysis completed", name),
		Passed:  false,
	}
}

// Analyzers builds the enabled analyzers in canonical order. Disabled
// analyzers contribute nothing to a run.
func Analyzers(cfg config.Config, prompts PromptPack, gen llm.Generator) []Analyzer {
	var out []Analyzer
	for _, name := range CanonicalAnalyzers {
		ac, ok := cfg.Analyzers[name]
		if !ok || !ac.Enabled {
			continue
		}
		out = append(out, &llmAnalyzer{
			name:     name,
			prompt:   prompts.For(name),
			severity: ac.Severity,
			gen:      gen,
		})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
