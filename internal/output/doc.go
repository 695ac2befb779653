// Package output formats review results for display or machine consumption.
//
// Single-file reviews support two formats:
//   - text — human-readable colored terminal output (default)
//   - json — the full review state as JSON
//
// Repository analyses additionally render as a markdown report via
// [RenderMarkdown]. Use [GetWriter] to obtain a [Writer] for a format
// string, then call [Writer.Write] with an [io.Writer] and a
// [*review.State].
package output
