package review

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CanonicalAnalyzers is the order analyzers run in and report sections
// render in. Unknown analyzer names sort after these.
var CanonicalAnalyzers = []string{"security", "maintainability", "style"}

// PromptPack holds the system prompts for each analyzer and the synthesizer.
// Prompts may reference {language}; it is substituted per run.
type PromptPack struct {
	Security        string `yaml:"security"`
	Maintainability string `yaml:"maintainability"`
	Style           string `yaml:"style"`
	Synthesis       string `yaml:"synthesis"`
}

const securityPrompt = `You are a security expert reviewing {language} code. Provide a DETAILED security analysis.

For EACH security issue found:
1. Describe the vulnerability clearly
2. Explain the potential impact
3. Show the problematic code snippet
4. Provide a specific fix with code example

Focus on:
- Injection vulnerabilities (SQL, command, code injection)
- Authentication/Authorization issues
- Data exposure and sensitive information leaks
- Insecure dependencies or deprecated functions
- OWASP Top 10 vulnerabilities

If no issues found, state "No security vulnerabilities detected."

Provide detailed, actionable feedback with code examples.`

const maintainabilityPrompt = `You are a senior software engineer reviewing {language} code. Provide a DETAILED maintainability analysis.

For EACH maintainability issue found:
1. Identify the code smell or anti-pattern
2. Explain why it's problematic
3. Show the problematic code
4. Suggest a better approach with code example

Focus on:
- Code smells (long methods, large classes, etc.)
- Anti-patterns and bad practices
- High complexity (cyclomatic/cognitive)
- Code duplication
- Poor error handling
- Unused variables and imports

If no issues found, state "Code maintainability is good."

Provide detailed, actionable feedback with code examples.`

const stylePrompt = `You are a code style expert reviewing {language} code. Provide a DETAILED style analysis.

For EACH style issue found:
1. Point out the style violation
2. Explain the best practice
3. Show the problematic code
4. Provide a corrected version

Focus on:
- Naming conventions (variables, functions, classes)
- Code formatting (indentation, spacing, line length)
- Documentation and comments quality
- Language-specific best practices and idioms

If no issues found, state "Code style follows best practices."

Provide detailed, actionable feedback with code examples.`

const synthesisPrompt = `You are an expert senior software engineer conducting a comprehensive code review.

Synthesize the analysis results below into a DETAILED, well-organized code review.

Structure your review as follows:

## 🔴 Critical Issues (High Priority)
[List all high-severity issues with detailed explanations and fixes]

## 🟠 Important Issues (Medium Priority)
[List all medium-severity issues with detailed explanations and fixes]

## 🔵 Minor Issues (Low Priority)
[List all low-severity issues with suggestions]

## ✅ Positive Aspects
[Mention any good practices observed]

## 📋 Summary
[Provide an overall assessment and prioritized action items]

For each issue:
- Explain WHAT the problem is
- Explain WHY it's a problem
- Show the problematic code
- Provide a SPECIFIC fix with code example

Be detailed, constructive, and actionable. Use code blocks for examples.`

// DefaultPrompts returns the built-in prompt pack.
func DefaultPrompts() PromptPack {
	return PromptPack{
		Security:        securityPrompt,
		Maintainability: maintainabilityPrompt,
		Style:           stylePrompt,
		Synthesis:       synthesisPrompt,
	}
}

// LoadPrompts loads a YAML prompt pack and fills unset entries from the
// defaults. An empty path returns the defaults.
func LoadPrompts(path string) (PromptPack, error) {
	pack := DefaultPrompts()
	if path == "" {
		return pack, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return PromptPack{}, fmt.Errorf("reading prompts file: %w", err)
	}
	var override PromptPack
	if err := yaml.Unmarshal(data, &override); err != nil {
		return PromptPack{}, fmt.Errorf("parsing prompts file: %w", err)
	}
	if override.Security != "" {
		pack.Security = override.Security
	}
	if override.Maintainability != "" {
		pack.Maintainability = override.Maintainability
	}
	if override.Style != "" {
		pack.Style = override.Style
	}
	if override.Synthesis != "" {
		pack.Synthesis = override.Synthesis
	}
	return pack, nil
}

// For returns the system prompt for an analyzer name, or "" if unknown.
func (p PromptPack) For(name string) string {
	switch name {
	case "security":
		return p.Security
	case "maintainability":
		return p.Maintainability
	case "style":
		return p.Style
	default:
		return ""
	}
}

// renderPrompt substitutes per-run values into a system prompt.
func renderPrompt(prompt, lang string) string {
	return strings.ReplaceAll(prompt, "{language}", lang)
}
