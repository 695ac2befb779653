// Package llm abstracts the text-generation backends used by the analyzers
// and the synthesizer. Backends are opaque: prompt in, text out, and any
// call may fail or return empty content.
package llm
