package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mshelton/loupe/internal/review"
)

func doneState() *review.State {
	return &review.State{
		Unit:     review.Unit{Code: "x = 1", Extension: "py", Language: "python"},
		Status:   review.StatusDone,
		Feedback: "Looks good.",
		Results: map[string]review.AnalysisResult{
			"security": {Summary: "No security issues detected", Passed: true},
			"style": {Issues: []review.Issue{
				{Title: "Unclear name", Description: "x says nothing", Severity: review.SeverityLow, Suggestion: "rename it"},
			}},
		},
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q): %v", format, err)
		}
	}
	if _, err := GetWriter("yaml"); err == nil {
		t.Error("GetWriter(yaml) should fail")
	}
}

func TestJSONWriter_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, doneState()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var st review.State
	if err := json.Unmarshal(buf.Bytes(), &st); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if st.Status != review.StatusDone {
		t.Errorf("status = %q", st.Status)
	}
	if len(st.Results) != 2 {
		t.Errorf("results = %v", st.Results)
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, doneState()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"Loupe Code Review",
		"python",
		"SECURITY",
		"STYLE",
		"Unclear name",
		"rename it",
		"Looks good.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Security renders before style.
	if strings.Index(got, "SECURITY") > strings.Index(got, "STYLE") {
		t.Error("sections out of canonical order")
	}
}

func TestTextWriter_ErroredState(t *testing.T) {
	st := &review.State{
		Unit:   review.Unit{Extension: "py"},
		Status: review.StatusErrored,
		Error:  "no code provided",
	}

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, st); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "no code provided") {
		t.Errorf("output = %q", buf.String())
	}
}
