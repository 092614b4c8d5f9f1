package runresult

import (
	"fmt"
	"strings"

	"github.com/prolearn/prolearn-go/internal/messages"
)

// Summary is a human-readable rollup of a run, one line per test plus a
// pass counter. Only explicit passes count; nil-signal records do not.
type Summary struct {
	Passed int
	Total  int
	Lines  []string
}

// Summarize renders parsed test records into the post-run report shown to
// students.
func Summarize(results []TestResult) Summary {
	s := Summary{Total: len(results)}
	for _, t := range results {
		switch {
		case t.Passed != nil && *t.Passed:
			s.Passed++
			s.Lines = append(s.Lines, fmt.Sprintf("✔ Test %d — OK", t.Index))
		case t.Passed != nil:
			s.Lines = append(s.Lines, "✖ "+failLine(t))
		default:
			line := fmt.Sprintf("⚠ Test %d — ERR", t.Index)
			if t.Message != "" {
				line += ": " + messages.Localize(t.Message)
			}
			s.Lines = append(s.Lines, line)
		}
	}
	return s
}

func failLine(t TestResult) string {
	if t.Expected != nil && t.Actual != nil {
		return fmt.Sprintf("Test %d — Oczekiwano: %s, otrzymano: %s", t.Index, *t.Expected, *t.Actual)
	}
	if t.Message != "" {
		return fmt.Sprintf("Test %d — Błąd: %s", t.Index, messages.Localize(t.Message))
	}
	return fmt.Sprintf("Test %d — Oczekiwano: ?, otrzymano: ?", t.Index)
}

// String formats the summary with a header line.
func (s Summary) String() string {
	header := fmt.Sprintf("Wynik: %d/%d testów zaliczonych", s.Passed, s.Total)
	if len(s.Lines) == 0 {
		return header
	}
	return header + "\n" + strings.Join(s.Lines, "\n")
}

const diffContext = 10

// MiniDiff points at the first position where expected and actual output
// diverge, with a short context window around it. When one string is a
// prefix of the other it reports the length mismatch instead. Equal strings
// yield "".
func MiniDiff(expected, actual string) string {
	e := []rune(expected)
	a := []rune(actual)

	limit := len(e)
	if len(a) < limit {
		limit = len(a)
	}
	for i := 0; i < limit; i++ {
		if e[i] != a[i] {
			return fmt.Sprintf(
				"Różnica na pozycji %d: oczekiwano %q vs otrzymano %q\noczekiwano: …%s…\notrzymano:  …%s…",
				i, string(e[i]), string(a[i]), window(e, i), window(a, i),
			)
		}
	}
	if len(e) != len(a) {
		return fmt.Sprintf("Różna długość: oczekiwano %d znaków, otrzymano %d", len(e), len(a))
	}
	return ""
}

func window(r []rune, pos int) string {
	start := pos - diffContext
	if start < 0 {
		start = 0
	}
	end := pos + diffContext
	if end > len(r) {
		end = len(r)
	}
	return string(r[start:end])
}
