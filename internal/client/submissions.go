package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prolearn/prolearn-go/internal/dto"
)

// Submit records a submission for a task, consuming one attempt.
func (c *Client) Submit(ctx context.Context, taskID string, req dto.SubmitRequest) (dto.Submission, error) {
	path := fmt.Sprintf("/api/tasks/%s/submissions", taskID)
	return do[dto.Submission](ctx, c, http.MethodPost, "/api/tasks/{id}/submissions", path, req)
}

// MySubmissionForTask fetches the current user's latest submission for a task.
// Returns a 404 APIError when no submission exists yet.
func (c *Client) MySubmissionForTask(ctx context.Context, taskID string) (dto.Submission, error) {
	path := fmt.Sprintf("/api/tasks/%s/submissions/me", taskID)
	return do[dto.Submission](ctx, c, http.MethodGet, "/api/tasks/{id}/submissions/me", path, nil)
}

// MySubmissions lists all of the current user's submissions.
func (c *Client) MySubmissions(ctx context.Context) ([]dto.Submission, error) {
	return do[[]dto.Submission](ctx, c, http.MethodGet, "/api/my/submissions", "/api/my/submissions", nil)
}

// ListSubmissions lists all submissions for a task (teacher only).
func (c *Client) ListSubmissions(ctx context.Context, taskID string) ([]dto.Submission, error) {
	path := fmt.Sprintf("/api/tasks/%s/submissions", taskID)
	return do[[]dto.Submission](ctx, c, http.MethodGet, "/api/tasks/{id}/submissions", path, nil)
}

// GetSubmission fetches one submission by id.
func (c *Client) GetSubmission(ctx context.Context, submissionID string) (dto.Submission, error) {
	path := fmt.Sprintf("/api/submissions/%s", submissionID)
	return do[dto.Submission](ctx, c, http.MethodGet, "/api/submissions/{id}", path, nil)
}

// GradeSubmission records a manual score and/or comment (teacher only).
func (c *Client) GradeSubmission(ctx context.Context, submissionID string, req dto.GradeRequest) (dto.Submission, error) {
	path := fmt.Sprintf("/api/submissions/%s/grade", submissionID)
	return do[dto.Submission](ctx, c, http.MethodPost, "/api/submissions/{id}/grade", path, req)
}

// SubmitQuiz records a quiz attempt for an activity. Works without a token
// for anonymous previews.
func (c *Client) SubmitQuiz(ctx context.Context, activityID string, req dto.QuizSubmitRequest) (dto.QuizResult, error) {
	path := fmt.Sprintf("/api/activities/%s/quiz/submit", activityID)
	return do[dto.QuizResult](ctx, c, http.MethodPost, "/api/activities/{id}/quiz/submit", path, req)
}

// ActivityAttempts lists all quiz attempts for an activity (teacher only).
func (c *Client) ActivityAttempts(ctx context.Context, activityID string) ([]dto.QuizAttempt, error) {
	path := fmt.Sprintf("/api/activities/%s/attempts", activityID)
	return do[[]dto.QuizAttempt](ctx, c, http.MethodGet, "/api/activities/{id}/attempts", path, nil)
}

// MyAttempts lists the current user's quiz attempts for an activity.
func (c *Client) MyAttempts(ctx context.Context, activityID string) ([]dto.QuizAttempt, error) {
	path := fmt.Sprintf("/api/activities/%s/attempts/me", activityID)
	return do[[]dto.QuizAttempt](ctx, c, http.MethodGet, "/api/activities/{id}/attempts/me", path, nil)
}
