package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "prolearn.db"))
	require.NoError(t, err)
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	sess, err := store.LoadSession()
	require.NoError(t, err)
	require.Nil(t, sess)

	first := "Ala"
	require.NoError(t, store.SaveSession(Session{
		Token:     "tok-1",
		Email:     "ala@szkola.pl",
		Role:      "STUDENT",
		FirstName: &first,
	}))

	sess, err = store.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "tok-1", sess.Token)
	require.Equal(t, "ala@szkola.pl", sess.Email)
	require.Equal(t, "Ala", *sess.FirstName)

	// Saving again replaces, never accumulates.
	require.NoError(t, store.SaveSession(Session{Token: "tok-2", Email: "ala@szkola.pl", Role: "STUDENT"}))
	sess, err = store.LoadSession()
	require.NoError(t, err)
	require.Equal(t, "tok-2", sess.Token)

	require.NoError(t, store.ClearSession())
	sess, err = store.LoadSession()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestVisitedContentIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.MarkVisited("l1", "a1"))
	require.NoError(t, store.MarkVisited("l1", "a1"))
	require.NoError(t, store.MarkVisited("l1", "a2"))
	require.NoError(t, store.MarkVisited("l2", "a9"))

	visited, err := store.VisitedActivities("l1")
	require.NoError(t, err)
	require.Len(t, visited, 2)
	require.True(t, visited["a1"])
	require.True(t, visited["a2"])
	require.False(t, visited["a9"])
}

func TestSelectedLessonPerClass(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SelectedLessonFor(7)
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, store.SetSelectedLesson(7, "l1"))
	require.NoError(t, store.SetSelectedLesson(7, "l2"))
	require.NoError(t, store.SetSelectedLesson(8, "l3"))

	got, err = store.SelectedLessonFor(7)
	require.NoError(t, err)
	require.Equal(t, "l2", got)

	got, err = store.SelectedLessonFor(8)
	require.NoError(t, err)
	require.Equal(t, "l3", got)
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetPreference("theme", "dark"))
	require.NoError(t, store.SetPreference("theme", "light"))

	got, err := store.GetPreference("theme")
	require.NoError(t, err)
	require.Equal(t, "light", got)

	got, err = store.GetPreference("missing")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestQuizDraftRoundTrip(t *testing.T) {
	store := openTestStore(t)

	type draft struct {
		MaxPoints float64  `json:"maxPoints"`
		Questions []string `json:"questions"`
	}

	var out draft
	ok, err := store.LoadQuizDraft("act-1", &out)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveQuizDraft("act-1", draft{MaxPoints: 10, Questions: []string{"P1"}}))
	require.NoError(t, store.SaveQuizDraft("act-1", draft{MaxPoints: 20, Questions: []string{"P1", "P2"}}))

	ok, err = store.LoadQuizDraft("act-1", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 20.0, out.MaxPoints)
	require.Len(t, out.Questions, 2)

	require.NoError(t, store.DeleteQuizDraft("act-1"))
	ok, err = store.LoadQuizDraft("act-1", &out)
	require.NoError(t, err)
	require.False(t, ok)
}
