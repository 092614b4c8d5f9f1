// Package messages maps raw backend error strings to the Polish copy shown
// to users. Matching is by case-insensitive substring so localized text
// survives wrapping, status-code prefixes and error-code suffixes.
package messages

import (
	"regexp"
	"strings"
)

const (
	// Unknown is shown when the backend gave no usable message at all.
	Unknown = "Wystąpił nieznany błąd."

	AttemptsExhausted  = "Wykorzystano wszystkie próby dla tego zadania."
	TaskLocked         = "Zadanie jest zablokowane po oddaniu."
	RunUnavailable     = "Uruchamianie tego zadania jest niedostępne."
	LoginRequired      = "Musisz być zalogowany, aby wykonać to działanie."
	InvalidCredentials = "Nieprawidłowe dane logowania"
	NotAuthenticated   = "Użytkownik nieautoryzowany"
)

var (
	errorPrefix  = regexp.MustCompile(`^(?i)error:\s*`)
	statusPrefix = regexp.MustCompile(`^\d+\s*`)
)

// substring match (lowercased) -> localized message. Checked in order.
var matchers = []struct {
	needle string
	msg    string
}{
	{"no submission attempts remaining", AttemptsExhausted},
	{"attempts remaining", AttemptsExhausted},
	{"attempt limit", AttemptsExhausted},
	{"task is locked", TaskLocked},
	{"locked after submission", TaskLocked},
	{"run is disabled", RunUnavailable},
	{"run not supported", RunUnavailable},
	{"run is not available", RunUnavailable},
	{"invalid credentials", InvalidCredentials},
	{"bad credentials", InvalidCredentials},
	{"user not authenticated", NotAuthenticated},
	{"unauthorized", LoginRequired},
	{"401", LoginRequired},
}

// Localize turns a raw backend error message into user-facing Polish copy.
// Leading "Error:" and numeric status prefixes are stripped first; messages
// with no known match pass through trimmed.
func Localize(raw string) string {
	s := strings.TrimSpace(raw)
	s = errorPrefix.ReplaceAllString(s, "")
	s = statusPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	lower := strings.ToLower(s)
	for _, m := range matchers {
		if strings.Contains(lower, m.needle) {
			return m.msg
		}
	}
	return s
}

// LocalizeErr is Localize over an error value; nil yields an empty string.
func LocalizeErr(err error) string {
	if err == nil {
		return ""
	}
	return Localize(err.Error())
}
