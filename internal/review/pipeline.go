package review

import (
	"context"

	"github.com/mshelton/loupe/internal/config"
	"github.com/mshelton/loupe/internal/llm"
	"github.com/mshelton/loupe/internal/redact"
)

// Pipeline runs the review state machine:
//
//	ingesting → {errored | analyzing} → synthesizing → done
//
// Only invalid input reaches errored; analyzer failures become result data
// and synthesis failures are absorbed by the fallback, so every other run
// ends in done.
type Pipeline struct {
	maxFileSizeMB int
	redactSecrets bool
	analyzers     []Analyzer
	synth         *Synthesizer
}

// NewPipeline builds a pipeline from the configuration and a generation
// backend shared by the analyzers and the synthesizer.
func NewPipeline(cfg config.Config, gen llm.Generator) (*Pipeline, error) {
	prompts, err := LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		maxFileSizeMB: cfg.MaxFileSizeMB,
		redactSecrets: cfg.Privacy.RedactSecrets,
		analyzers:     Analyzers(cfg, prompts, gen),
		synth:         NewSynthesizer(gen, prompts.Synthesis),
	}, nil
}

// Run reviews one unit and returns its terminal state.
func (p *Pipeline) Run(ctx context.Context, unit Unit) *State {
	st := &State{Unit: unit, Status: StatusIngesting}

	lang, err := validate(unit, p.maxFileSizeMB)
	if err != nil {
		st.Status = StatusErrored
		st.Error = err.Error()
		st.Feedback = "Error: " + st.Error
		return st
	}
	st.Unit.Language = lang

	st.Status = StatusAnalyzing
	code := unit.Code
	if p.redactSecrets {
		code = redact.Secrets(code)
	}
	st.Results = runAnalyzers(ctx, code, lang, p.analyzers)

	st.Status = StatusSynthesizing
	st.Feedback = p.synth.Synthesize(ctx, st.Results)

	st.Status = StatusDone
	return st
}
