package progress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func lesson() dto.LessonDetail {
	return dto.LessonDetail{
		ID: "l1",
		Activities: []dto.LessonActivity{
			{ID: "a1", Type: dto.ActivityContent},
			{ID: "a2", Type: dto.ActivityContent},
			{ID: "a3", Type: dto.ActivityQuiz},
			{ID: "a4", Type: dto.ActivityTask, TaskID: strPtr("t1")},
			{ID: "a5", Type: dto.ActivityTask, TaskID: strPtr("t2")},
		},
	}
}

func TestComputeEqualWeighting(t *testing.T) {
	report := Compute(lesson(), Inputs{
		SubmissionsByTask: map[string]dto.Submission{"t1": {ID: "s1", TaskID: "t1"}},
		QuizAttempted:     map[string]bool{"a3": true},
		Visited:           map[string]bool{"a1": true},
	})

	require.Equal(t, Counts{Completed: 1, Total: 2}, report.Content)
	require.Equal(t, Counts{Completed: 1, Total: 1}, report.Quiz)
	require.Equal(t, Counts{Completed: 1, Total: 2}, report.Task)
	require.Equal(t, 3, report.Completed)
	require.Equal(t, 5, report.Total)
	require.Equal(t, 60, report.Percent)
}

func TestComputeEmptyLesson(t *testing.T) {
	report := Compute(dto.LessonDetail{}, Inputs{})
	require.Zero(t, report.Total)
	require.Zero(t, report.Percent)
}

func TestLatestPerTask(t *testing.T) {
	subs := []dto.Submission{
		{ID: "old", TaskID: "t1", CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: "new", TaskID: "t1", CreatedAt: "2026-01-02T10:00:00Z"},
		{ID: "only", TaskID: "t2", CreatedAt: "2026-01-01T09:00:00Z"},
	}

	latest := LatestPerTask(subs)
	require.Len(t, latest, 2)
	require.Equal(t, "new", latest["t1"].ID)
	require.Equal(t, "only", latest["t2"].ID)
}

func TestLatestPerTaskTieKeepsLater(t *testing.T) {
	subs := []dto.Submission{
		{ID: "first", TaskID: "t1", CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: "second", TaskID: "t1", CreatedAt: "2026-01-01T10:00:00Z"},
	}
	require.Equal(t, "second", LatestPerTask(subs)["t1"].ID)
}

func TestLatestPerTaskBadTimestamps(t *testing.T) {
	subs := []dto.Submission{
		{ID: "bad", TaskID: "t1", CreatedAt: "garbage"},
		{ID: "good", TaskID: "t1", CreatedAt: "2026-01-01T10:00:00Z"},
	}
	require.Equal(t, "good", LatestPerTask(subs)["t1"].ID)
}

func TestTaskStatus(t *testing.T) {
	require.Equal(t, StatusNotStarted, TaskStatus(nil, 0, 10))

	full := &dto.Submission{Status: dto.SubmissionSubmitted}
	require.Equal(t, StatusPassed, TaskStatus(full, 10, 10))

	rejected := &dto.Submission{Status: dto.SubmissionRejected}
	require.Equal(t, StatusRejected, TaskStatus(rejected, 0, 10))

	graded := &dto.Submission{Status: dto.SubmissionGraded}
	require.Equal(t, StatusGraded, TaskStatus(graded, 4, 10))

	submitted := &dto.Submission{Status: dto.SubmissionSubmitted}
	require.Equal(t, StatusSubmitted, TaskStatus(submitted, 0, 10))
}

func TestEarnedPointsPrecedence(t *testing.T) {
	s := dto.Submission{
		EffectiveScore: floatPtr(7),
		ManualScore:    floatPtr(5),
		AutoScore:      floatPtr(3),
	}
	require.Equal(t, 7.0, EarnedPoints(s))

	s.EffectiveScore = nil
	require.Equal(t, 5.0, EarnedPoints(s))

	s.ManualScore = nil
	require.Equal(t, 3.0, EarnedPoints(s))

	require.Zero(t, EarnedPoints(dto.Submission{}))
}

func TestBar(t *testing.T) {
	require.Contains(t, Bar(50, 10), "50%")
	require.Contains(t, Bar(0, 10), "0%")
	require.Contains(t, Bar(100, 10), "100%")
}
