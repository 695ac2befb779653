// Package review implements the per-unit review pipeline: input validation,
// concurrent fan-out to independent analyzers, conflict-free merging of
// their results, and narrative synthesis with a deterministic fallback.
package review
