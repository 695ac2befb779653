// Loupe reviews code with LLM analyzers that run concurrently and a
// synthesizer that merges their findings into one narrative review.
//
// It reviews snippets from stdin, single files, and whole public GitHub
// repositories, emitting text, JSON, or a markdown report.
//
// Usage:
//
//	loupe review main.py              # review a file
//	cat main.py | loupe review        # review stdin
//	loupe repo https://github.com/owner/repo --report
//	loupe config show                 # show effective configuration
//
// See https://github.com/mshelton/loupe for full documentation.
package main
