package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalizeKnownMessages(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"No submission attempts remaining", AttemptsExhausted},
		{"Error: no submission attempts remaining", AttemptsExhausted},
		{"409 Task is locked after submissions", TaskLocked},
		{"Run is disabled for this task", RunUnavailable},
		{"run not supported", RunUnavailable},
		{"Invalid credentials (AUTH)", InvalidCredentials},
		{"401 Unauthorized", LoginRequired},
		{"User not authenticated", NotAuthenticated},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Localize(tc.raw), tc.raw)
	}
}

func TestLocalizeStripsPrefixes(t *testing.T) {
	require.Equal(t, "Something odd happened", Localize("Error: 500 Something odd happened"))
	require.Equal(t, "Not found", Localize("404 Not found"))
}

func TestLocalizePassesUnknownThrough(t *testing.T) {
	require.Equal(t, "Całkiem nowy komunikat", Localize("  Całkiem nowy komunikat  "))
}

func TestLocalizeEmpty(t *testing.T) {
	require.Equal(t, Unknown, Localize(""))
	require.Equal(t, Unknown, Localize("Error: "))
}

func TestLocalizeErr(t *testing.T) {
	require.Empty(t, LocalizeErr(nil))
	require.Equal(t, InvalidCredentials, LocalizeErr(errors.New("invalid credentials")))
}
