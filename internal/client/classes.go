package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/prolearn/prolearn-go/internal/dto"
)

// MyClasses lists classes the current user belongs to.
func (c *Client) MyClasses(ctx context.Context) ([]dto.Classroom, error) {
	return do[[]dto.Classroom](ctx, c, http.MethodGet, "/api/classes/me", "/api/classes/me", nil)
}

// CreateClass creates a classroom owned by the current teacher.
func (c *Client) CreateClass(ctx context.Context, req dto.CreateClassRequest) (dto.Classroom, error) {
	return do[dto.Classroom](ctx, c, http.MethodPost, "/api/classes", "/api/classes", req)
}

// JoinClass enrolls the current student using a join code. The code is
// trimmed and uppercased before sending, matching what teachers hand out.
func (c *Client) JoinClass(ctx context.Context, code string) (dto.Classroom, error) {
	req := dto.JoinClassRequest{Code: strings.ToUpper(strings.TrimSpace(code))}
	return do[dto.Classroom](ctx, c, http.MethodPost, "/api/classes/join", "/api/classes/join", req)
}

// DeleteClass removes an entire class (teacher only).
func (c *Client) DeleteClass(ctx context.Context, classID int64) error {
	path := fmt.Sprintf("/api/classes/%d", classID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/classes/{id}", path, nil)
	return err
}

// ClassMembers lists members of a class.
func (c *Client) ClassMembers(ctx context.Context, classID int64) ([]dto.ClassMember, error) {
	path := fmt.Sprintf("/api/classes/%d/members", classID)
	return do[[]dto.ClassMember](ctx, c, http.MethodGet, "/api/classes/{id}/members", path, nil)
}

// RemoveClassMember removes a member from a class (teacher only).
func (c *Client) RemoveClassMember(ctx context.Context, classID int64, userID string) error {
	path := fmt.Sprintf("/api/classes/%d/members/%s", classID, userID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/classes/{id}/members/{userId}", path, nil)
	return err
}

// LeaveClass removes the current user from a class.
func (c *Client) LeaveClass(ctx context.Context, classID int64) error {
	path := fmt.Sprintf("/api/classes/%d/members/me", classID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/classes/{id}/members/me", path, nil)
	return err
}

// ClassProgress fetches the class progress matrix, optionally narrowed to one
// lesson.
func (c *Client) ClassProgress(ctx context.Context, classID int64, lessonID string) (dto.ClassProgress, error) {
	path := fmt.Sprintf("/api/classes/%d/progress", classID)
	if lessonID != "" {
		path += "?lessonId=" + lessonID
	}
	return do[dto.ClassProgress](ctx, c, http.MethodGet, "/api/classes/{id}/progress", path, nil)
}

// ClassProgressOverview fetches the students x lessons summary for a class.
func (c *Client) ClassProgressOverview(ctx context.Context, classID int64) (dto.ClassProgressOverview, error) {
	path := fmt.Sprintf("/api/classes/%d/progress/overview", classID)
	return do[dto.ClassProgressOverview](ctx, c, http.MethodGet, "/api/classes/{id}/progress/overview", path, nil)
}

// ClassSubmissions lists all submissions across a class with lesson/task
// context.
func (c *Client) ClassSubmissions(ctx context.Context, classID int64) ([]dto.ClassSubmission, error) {
	path := fmt.Sprintf("/api/classes/%d/submissions", classID)
	return do[[]dto.ClassSubmission](ctx, c, http.MethodGet, "/api/classes/{id}/submissions", path, nil)
}
