package review

import (
	"context"
	"reflect"
	"testing"
	"time"
)

// stubAnalyzer returns a fixed result after an optional delay, or panics.
type stubAnalyzer struct {
	name   string
	result AnalysisResult
	delay  time.Duration
	panics bool
}

func (s *stubAnalyzer) Name() string { return s.name }

func (s *stubAnalyzer) Run(_ context.Context, _, _ string) AnalysisResult {
	if s.panics {
		panic("stub exploded")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result
}

func TestMerge_OrderIndependent(t *testing.T) {
	a := map[string]AnalysisResult{"security": {Summary: "sec"}}
	b := map[string]AnalysisResult{"maintainability": {Summary: "maint"}}
	c := map[string]AnalysisResult{"style": {Summary: "style"}}

	orders := [][]map[string]AnalysisResult{
		{a, b, c},
		{c, b, a},
		{b, a, c},
		{c, a, b},
	}

	want := Merge(a, b, c)
	for i, order := range orders {
		if got := Merge(order...); !reflect.DeepEqual(got, want) {
			t.Errorf("order %d: Merge = %v, want %v", i, got, want)
		}
	}
	if len(want) != 3 {
		t.Errorf("merged map has %d keys, want 3", len(want))
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(); len(got) != 0 {
		t.Errorf("Merge() = %v, want empty map", got)
	}
}

func TestRunAnalyzers_AllKeysPresent(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{name: "security", result: AnalysisResult{Summary: "sec"}, delay: 20 * time.Millisecond},
		&stubAnalyzer{name: "maintainability", result: AnalysisResult{Summary: "maint"}},
		&stubAnalyzer{name: "style", result: AnalysisResult{Summary: "style"}, delay: 5 * time.Millisecond},
	}

	results := runAnalyzers(context.Background(), "code", "python", analyzers)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, name := range []string{"security", "maintainability", "style"} {
		if _, ok := results[name]; !ok {
			t.Errorf("missing key %q", name)
		}
	}
	if results["security"].Summary != "sec" {
		t.Errorf("security summary = %q", results["security"].Summary)
	}
}

func TestRunAnalyzers_CompletionOrderIrrelevant(t *testing.T) {
	// Run twice with reversed delays; merged output must be identical.
	make3 := func(d1, d2 time.Duration) []Analyzer {
		return []Analyzer{
			&stubAnalyzer{name: "security", result: AnalysisResult{Summary: "sec"}, delay: d1},
			&stubAnalyzer{name: "style", result: AnalysisResult{Summary: "style"}, delay: d2},
		}
	}

	first := runAnalyzers(context.Background(), "c", "go", make3(15*time.Millisecond, 0))
	second := runAnalyzers(context.Background(), "c", "go", make3(0, 15*time.Millisecond))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ by completion order: %v vs %v", first, second)
	}
}

func TestRunAnalyzers_PanicIsolated(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{name: "security", result: AnalysisResult{Summary: "sec", Passed: true}},
		&stubAnalyzer{name: "style", panics: true},
	}

	results := runAnalyzers(context.Background(), "code", "python", analyzers)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !results["security"].Passed {
		t.Error("healthy analyzer should be unaffected by the panicking one")
	}
	style := results["style"]
	if style.Passed {
		t.Error("panicking analyzer should produce a failed result")
	}
	if len(style.Issues) != 1 || style.Issues[0].Severity != SeverityHigh {
		t.Errorf("panicking analyzer issues = %v", style.Issues)
	}
}

func TestRunAnalyzers_NoAnalyzers(t *testing.T) {
	results := runAnalyzers(context.Background(), "code", "python", nil)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
