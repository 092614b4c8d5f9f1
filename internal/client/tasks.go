package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func taskKey(taskID string) string  { return "/api/tasks/" + taskID }
func testsKey(taskID string) string { return "/api/tasks/" + taskID + "/tests" }

// CreateTask creates a task attached to a lesson.
func (c *Client) CreateTask(ctx context.Context, lessonID string, req dto.CreateTaskRequest) (dto.Task, error) {
	path := fmt.Sprintf("/api/lessons/%s/tasks", lessonID)
	return do[dto.Task](ctx, c, http.MethodPost, "/api/lessons/{id}/tasks", path, req)
}

// GetPublicTask fetches the student-safe task view. The teacher solution is
// never present in this response.
func (c *Client) GetPublicTask(ctx context.Context, taskID string) (dto.PublicTask, error) {
	return get[dto.PublicTask](ctx, c, "/api/tasks/{id}", taskKey(taskID))
}

// GetTeacherTask fetches the full task including the hidden solution
// (teacher only).
func (c *Client) GetTeacherTask(ctx context.Context, taskID string) (dto.PublicTask, error) {
	path := fmt.Sprintf("/api/tasks/%s/teacher", taskID)
	return do[dto.PublicTask](ctx, c, http.MethodGet, "/api/tasks/{id}/teacher", path, nil)
}

// UpdateTask patches task metadata. Pass TeacherSolution through
// dto.UpdateTaskRequest to persist the hidden solution as well.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest) (dto.Task, error) {
	out, err := do[dto.Task](ctx, c, http.MethodPatch, "/api/tasks/{id}", taskKey(taskID), req)
	if err == nil {
		c.invalidate(ctx, taskKey(taskID))
	}
	return out, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/tasks/{id}", taskKey(taskID), nil)
	if err == nil {
		c.invalidate(ctx, taskKey(taskID), testsKey(taskID))
	}
	return err
}

// GetTests lists the programming test cases of a task.
func (c *Client) GetTests(ctx context.Context, taskID string) ([]dto.TestCase, error) {
	return get[[]dto.TestCase](ctx, c, "/api/tasks/{id}/tests", testsKey(taskID))
}

// CreateTest adds a test case to a task and returns the record with its
// server-assigned id.
func (c *Client) CreateTest(ctx context.Context, taskID string, req dto.TestCaseRequest) (dto.TestCase, error) {
	out, err := do[dto.TestCase](ctx, c, http.MethodPost, "/api/tasks/{id}/tests", testsKey(taskID), req)
	if err == nil {
		c.invalidate(ctx, testsKey(taskID))
	}
	return out, err
}

// UpdateTest replaces a test case.
func (c *Client) UpdateTest(ctx context.Context, taskID, testID string, req dto.TestCaseRequest) (dto.TestCase, error) {
	path := fmt.Sprintf("/api/tasks/%s/tests/%s", taskID, testID)
	out, err := do[dto.TestCase](ctx, c, http.MethodPut, "/api/tasks/{id}/tests/{testId}", path, req)
	if err == nil {
		c.invalidate(ctx, testsKey(taskID))
	}
	return out, err
}

// DeleteTest removes a test case.
func (c *Client) DeleteTest(ctx context.Context, taskID, testID string) error {
	path := fmt.Sprintf("/api/tasks/%s/tests/%s", taskID, testID)
	_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/tasks/{id}/tests/{testId}", path, nil)
	if err == nil {
		c.invalidate(ctx, testsKey(taskID))
	}
	return err
}

// RunOutcome is the degraded-friendly result of run and run-demo calls.
// Result holds the decoded grader payload when the call succeeded; Error
// carries the failure message otherwise. Exactly one of the two is set.
type RunOutcome struct {
	Result any
	Error  string
}

// Failed reports whether the run did not produce a grader payload.
func (o RunOutcome) Failed() bool { return o.Error != "" }

// RunTask executes student code against the task's tests. Run failures are
// folded into the outcome instead of an error so callers can render a
// degraded "run unsupported" state without try/catch at every call site.
func (c *Client) RunTask(ctx context.Context, taskID string, req dto.RunRequest) RunOutcome {
	path := fmt.Sprintf("/api/tasks/%s/run", taskID)
	raw, err := do[json.RawMessage](ctx, c, http.MethodPost, "/api/tasks/{id}/run", path, req)
	return runOutcome(raw, err)
}

// RunDemo executes the stored teacher solution against the task's tests
// (teacher only); no body is sent.
func (c *Client) RunDemo(ctx context.Context, taskID string) RunOutcome {
	path := fmt.Sprintf("/api/tasks/%s/run-demo", taskID)
	raw, err := do[json.RawMessage](ctx, c, http.MethodPost, "/api/tasks/{id}/run-demo", path, nil)
	return runOutcome(raw, err)
}

func runOutcome(raw json.RawMessage, err error) RunOutcome {
	if err != nil {
		return RunOutcome{Error: err.Error()}
	}
	var decoded any
	if len(raw) > 0 {
		if unmarshalErr := json.Unmarshal(raw, &decoded); unmarshalErr != nil {
			decoded = string(raw)
		}
	}
	// Some backends report run failures inside a 2xx payload.
	if m, ok := decoded.(map[string]any); ok {
		if msg, ok := m["error"].(string); ok && msg != "" && len(m) == 1 {
			return RunOutcome{Error: msg}
		}
	}
	return RunOutcome{Result: decoded}
}
