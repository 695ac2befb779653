package review

import (
	"context"
	"fmt"
)

type keyedResult struct {
	name   string
	result AnalysisResult
}

// runAnalyzers fans out one goroutine per analyzer over the same read-only
// input and waits for all of them. Each goroutine returns a (key, result)
// pair; the caller inserts into the map, so no locking is needed. A panicking
// analyzer is converted to a failed result rather than crashing the run.
func runAnalyzers(ctx context.Context, code, lang string, analyzers []Analyzer) map[string]AnalysisResult {
	results := make(chan keyedResult, len(analyzers))
	for _, a := range analyzers {
		go func(a Analyzer) {
			defer func() {
				if r := recover(); r != nil {
					results <- keyedResult{a.Name(), failedResult(a.Name(), fmt.Errorf("analyzer panic: %v", r))}
				}
			}()
			results <- keyedResult{a.Name(), a.Run(ctx, code, lang)}
		}(a)
	}

	parts := make([]map[string]AnalysisResult, 0, len(analyzers))
	for range analyzers {
		kr := <-results
		parts = append(parts, map[string]AnalysisResult{kr.name: kr.result})
	}
	return Merge(parts...)
}

// Merge unions per-analyzer partial results. Keys are disjoint by
// construction (each analyzer writes only its own name), so the union is
// commutative and the merged map is independent of completion order.
func Merge(parts ...map[string]AnalysisResult) map[string]AnalysisResult {
	merged := make(map[string]AnalysisResult)
	for _, part := range parts {
		for name, result := range part {
			merged[name] = result
		}
	}
	return merged
}
