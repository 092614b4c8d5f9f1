package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func lessonKey(lessonID string) string { return "/api/lessons/" + lessonID }

// GetLesson fetches a full lesson with its activities. Public read: no token
// required.
func (c *Client) GetLesson(ctx context.Context, lessonID string) (dto.LessonDetail, error) {
	return get[dto.LessonDetail](ctx, c, "/api/lessons/{id}", lessonKey(lessonID))
}

// ListLessons lists lesson summaries within a class.
func (c *Client) ListLessons(ctx context.Context, classID int64) ([]dto.LessonListItem, error) {
	path := fmt.Sprintf("/api/classes/%d/lessons", classID)
	return do[[]dto.LessonListItem](ctx, c, http.MethodGet, "/api/classes/{id}/lessons", path, nil)
}

// CreateLesson creates a lesson inside a class.
func (c *Client) CreateLesson(ctx context.Context, classID int64, req dto.CreateLessonRequest) (dto.LessonListItem, error) {
	path := fmt.Sprintf("/api/classes/%d/lessons", classID)
	return do[dto.LessonListItem](ctx, c, http.MethodPost, "/api/classes/{id}/lessons", path, req)
}

// CreateLessonWithActivities creates a lesson and its initial activities in
// one call.
func (c *Client) CreateLessonWithActivities(ctx context.Context, classID int64, req dto.CreateLessonWithActivitiesRequest) (dto.LessonListItem, error) {
	path := fmt.Sprintf("/api/classes/%d/lessons/with-activities", classID)
	return do[dto.LessonListItem](ctx, c, http.MethodPost, "/api/classes/{id}/lessons/with-activities", path, req)
}

// UpdateLesson updates lesson metadata within a class.
func (c *Client) UpdateLesson(ctx context.Context, classID int64, lessonID string, req dto.UpdateLessonRequest) (dto.LessonListItem, error) {
	path := fmt.Sprintf("/api/classes/%d/lessons/%s", classID, lessonID)
	out, err := do[dto.LessonListItem](ctx, c, http.MethodPut, "/api/classes/{id}/lessons/{lessonId}", path, req)
	if err == nil {
		c.invalidate(ctx, lessonKey(lessonID))
	}
	return out, err
}

// DeleteLesson removes a lesson from a class.
func (c *Client) DeleteLesson(ctx context.Context, classID int64, lessonID string) error {
	path := fmt.Sprintf("/api/classes/%d/lessons/%s", classID, lessonID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/classes/{id}/lessons/{lessonId}", path, nil)
	if err == nil {
		c.invalidate(ctx, lessonKey(lessonID))
	}
	return err
}

// LessonSummary fetches per-student totals for a lesson (teacher view).
func (c *Client) LessonSummary(ctx context.Context, lessonID string) (dto.LessonSummary, error) {
	path := fmt.Sprintf("/api/lessons/%s/summary", lessonID)
	return do[dto.LessonSummary](ctx, c, http.MethodGet, "/api/lessons/{id}/summary", path, nil)
}

// CreateActivity adds an activity to a lesson.
func (c *Client) CreateActivity(ctx context.Context, lessonID string, req dto.CreateActivityRequest) (dto.LessonActivity, error) {
	path := fmt.Sprintf("/api/lessons/%s/activities", lessonID)
	out, err := do[dto.LessonActivity](ctx, c, http.MethodPost, "/api/lessons/{id}/activities", path, req)
	if err == nil {
		c.invalidate(ctx, lessonKey(lessonID))
	}
	return out, err
}

// CreateActivityWithTask adds a TASK activity and its backing task in one call.
func (c *Client) CreateActivityWithTask(ctx context.Context, lessonID string, req dto.CreateActivityWithTaskRequest) (dto.LessonActivity, error) {
	path := fmt.Sprintf("/api/lessons/%s/activities-with-task", lessonID)
	out, err := do[dto.LessonActivity](ctx, c, http.MethodPost, "/api/lessons/{id}/activities-with-task", path, req)
	if err == nil {
		c.invalidate(ctx, lessonKey(lessonID))
	}
	return out, err
}

// MoveActivity repositions an activity. The returned slice is the server's
// authoritative ordering and must replace any local guess.
func (c *Client) MoveActivity(ctx context.Context, lessonID, activityID string, newIndex int) ([]dto.LessonActivity, error) {
	path := fmt.Sprintf("/api/lessons/%s/activities/%s/move", lessonID, activityID)
	out, err := do[[]dto.LessonActivity](ctx, c, http.MethodPost, "/api/lessons/{id}/activities/{activityId}/move", path, dto.MoveActivityRequest{NewIndex: newIndex})
	if err == nil {
		c.invalidate(ctx, lessonKey(lessonID))
	}
	return out, err
}

// UpdateActivity updates activity title, order or body.
func (c *Client) UpdateActivity(ctx context.Context, activityID string, req dto.UpdateActivityRequest) (dto.LessonActivity, error) {
	path := fmt.Sprintf("/api/activities/%s", activityID)
	return do[dto.LessonActivity](ctx, c, http.MethodPatch, "/api/activities/{id}", path, req)
}

// DeleteActivity removes an activity.
func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	path := fmt.Sprintf("/api/activities/%s", activityID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/activities/{id}", path, nil)
	return err
}
