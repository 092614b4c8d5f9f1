// Package progress computes a student's lesson progress on the client.
// Content visits and quiz completions are tracked locally, task completion
// comes from submissions, and every activity weighs the same.
package progress

import (
	"fmt"
	"time"

	"github.com/prolearn/prolearn-go/internal/dto"
)

// Counts is completion within one activity kind.
type Counts struct {
	Completed int
	Total     int
}

// Report is the computed progress for a lesson.
type Report struct {
	Content   Counts
	Quiz      Counts
	Task      Counts
	Completed int
	Total     int
	Percent   int
}

// Inputs carries the completion signals for Compute. SubmissionsByTask maps
// task id to the student's latest submission; QuizAttempted and Visited are
// activity-id sets.
type Inputs struct {
	SubmissionsByTask map[string]dto.Submission
	QuizAttempted     map[string]bool
	Visited           map[string]bool
}

// Compute tallies per-kind and overall completion for a lesson. A task counts
// once any submission exists, a quiz once any attempt exists, content once
// visited. The percentage is rounded; an empty lesson is 0%.
func Compute(detail dto.LessonDetail, in Inputs) Report {
	var r Report
	for _, a := range detail.Activities {
		switch a.Type {
		case dto.ActivityContent:
			r.Content.Total++
			if in.Visited[a.ID] {
				r.Content.Completed++
			}
		case dto.ActivityQuiz:
			r.Quiz.Total++
			if in.QuizAttempted[a.ID] {
				r.Quiz.Completed++
			}
		case dto.ActivityTask:
			r.Task.Total++
			if a.TaskID != nil {
				if _, ok := in.SubmissionsByTask[*a.TaskID]; ok {
					r.Task.Completed++
				}
			}
		}
	}
	r.Total = r.Content.Total + r.Quiz.Total + r.Task.Total
	r.Completed = r.Content.Completed + r.Quiz.Completed + r.Task.Completed
	if r.Total > 0 {
		r.Percent = int(float64(r.Completed)/float64(r.Total)*100 + 0.5)
	}
	return r
}

// LatestPerTask reduces a submission list to the most recent entry per task,
// compared by createdAt. Unparseable timestamps sort earliest; ties keep the
// later element in the input order.
func LatestPerTask(submissions []dto.Submission) map[string]dto.Submission {
	out := make(map[string]dto.Submission)
	for _, s := range submissions {
		prev, ok := out[s.TaskID]
		if !ok || !parseTime(s.CreatedAt).Before(parseTime(prev.CreatedAt)) {
			out[s.TaskID] = s
		}
	}
	return out
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Task status labels shown to students.
const (
	StatusNotStarted = "Nie rozpoczęto"
	StatusPassed     = "Zaliczone"
	StatusRejected   = "Odrzucone"
	StatusGraded     = "Ocenione"
	StatusSubmitted  = "Wysłane"
)

// TaskStatus resolves the display status for a task. A full score reads as
// passed regardless of the grading state; otherwise the submission status
// decides.
func TaskStatus(submission *dto.Submission, earned, maxPoints float64) string {
	if submission == nil {
		return StatusNotStarted
	}
	if maxPoints > 0 && earned >= maxPoints {
		return StatusPassed
	}
	switch submission.Status {
	case dto.SubmissionRejected:
		return StatusRejected
	case dto.SubmissionGraded:
		return StatusGraded
	case dto.SubmissionSubmitted:
		return StatusSubmitted
	}
	if submission.Status != "" {
		return string(submission.Status)
	}
	return StatusSubmitted
}

// EarnedPoints picks the score that counts for a submission: the effective
// score when present, then the manual override, then the automatic score.
func EarnedPoints(s dto.Submission) float64 {
	switch {
	case s.EffectiveScore != nil:
		return *s.EffectiveScore
	case s.ManualScore != nil:
		return *s.ManualScore
	case s.AutoScore != nil:
		return *s.AutoScore
	case s.Points != nil:
		return *s.Points
	}
	return 0
}

// Bar renders a simple text progress bar for terminal output.
func Bar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("[%s] %d%%", bar, percent)
}
