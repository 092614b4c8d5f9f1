package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefsSetAndGet(t *testing.T) {
	a := newTestApp(t, "http://localhost:0")

	require.NoError(t, a.cmdPrefs([]string{"set", "theme", "dark"}))
	v, err := a.store.GetPreference("theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)

	require.NoError(t, a.cmdPrefs([]string{"set", "font-scale", "1.25"}))
	v, err = a.store.GetPreference("font-scale")
	require.NoError(t, err)
	require.Equal(t, "1.25", v)
}

func TestPrefsRejectsBadValues(t *testing.T) {
	a := newTestApp(t, "http://localhost:0")

	require.Error(t, a.cmdPrefs([]string{"set", "theme", "blue"}))
	require.Error(t, a.cmdPrefs([]string{"set", "font-scale", "9"}))
	require.Error(t, a.cmdPrefs([]string{"set", "mystery", "x"}))
	require.Error(t, a.cmdPrefs([]string{"nope"}))
}
