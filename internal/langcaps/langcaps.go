// Package langcaps describes what each supported programming language can do
// on the platform: which test modes it supports and the starter code teachers
// see when creating a task.
package langcaps

import "regexp"

// Capability describes one language's task support.
type Capability struct {
	Label             string
	SupportsIO        bool
	SupportsEval      bool
	Sample            string
	SampleIO          string
	EvalSignatureHint string
}

var capabilities = map[string]Capability{
	"javascript": {
		Label:        "JavaScript",
		SupportsIO:   true,
		SupportsEval: true,
		Sample: `function solve(input) {
  // Twój kod tutaj
  return input;
}`,
		SampleIO: `const line = readline();
console.log(line);`,
		EvalSignatureHint: "function solve(input) { ... }",
	},
	"python": {
		Label:      "Python",
		SupportsIO: true,
		Sample: `line = input()
print(line)`,
	},
}

// Supported lists language identifiers in a stable order.
var Supported = []string{"javascript", "python"}

// Lookup returns the capability entry for a language identifier.
func Lookup(language string) (Capability, bool) {
	c, ok := capabilities[language]
	return c, ok
}

var (
	jsSolve = regexp.MustCompile(`function\s+solve\s*\(`)
	pySolve = regexp.MustCompile(`def\s+solve\s*\(`)
)

// SolveSignatureOK reports whether source defines the solve entry point
// required for EVAL-mode tests in the given language. Unknown languages
// never match.
func SolveSignatureOK(language, source string) bool {
	switch language {
	case "javascript":
		return jsSolve.MatchString(source)
	case "python":
		return pySolve.MatchString(source)
	default:
		return false
	}
}
