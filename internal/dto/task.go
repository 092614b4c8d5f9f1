package dto

// TestMode selects how a test case is evaluated. IO feeds stdin and compares
// stdout; EVAL calls solve(input) and compares the return value.
type TestMode string

const (
	TestModeIO   TestMode = "IO"
	TestModeEval TestMode = "EVAL"
)

// Task is the compact task shape embedded in lesson detail responses.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MaxPoints   float64 `json:"maxPoints"`
}

// PublicTask is the task shape returned by GET /api/tasks/{id}. The teacher
// variant (GET /api/tasks/{id}/teacher) additionally carries TeacherSolution;
// student responses never include it.
type PublicTask struct {
	ID                   string  `json:"id"`
	LessonID             *string `json:"lessonId,omitempty"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	MaxPoints            float64 `json:"maxPoints"`
	CreatedAt            string  `json:"createdAt"`
	Type                 string  `json:"type"`
	Language             string  `json:"language"`
	StarterCode          *string `json:"starterCode,omitempty"`
	MaxAttempts          *int    `json:"maxAttempts,omitempty"`
	AllowRunBeforeSubmit *bool   `json:"allowRunBeforeSubmit,omitempty"`
	LockAfterSubmit      *bool   `json:"lockAfterSubmit,omitempty"`
	TeacherSolution      *string `json:"teacherSolution,omitempty"`
}

// CreateTaskRequest is the payload of POST /api/lessons/{id}/tasks.
type CreateTaskRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description"`
	MaxPoints       float64 `json:"maxPoints" validate:"gte=0"`
	StarterCode     string  `json:"starterCode,omitempty"`
	Tests           string  `json:"tests,omitempty"`
	Language        string  `json:"language,omitempty"`
	TeacherSolution string  `json:"teacherSolution,omitempty"`
}

// UpdateTaskRequest is the payload of PATCH /api/tasks/{id}. Nil fields are
// omitted so the server only touches what the caller set.
type UpdateTaskRequest struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	MaxPoints       *float64 `json:"maxPoints,omitempty"`
	StarterCode     *string  `json:"starterCode,omitempty"`
	Tests           *string  `json:"tests,omitempty"`
	GradingMode     *string  `json:"gradingMode,omitempty"`
	Language        *string  `json:"language,omitempty"`
	TeacherSolution *string  `json:"teacherSolution,omitempty"`
}

// TestCase is a programming test case attached to a task. Hidden cases
// (Visible=false) are withheld from student-facing result details.
type TestCase struct {
	ID       string   `json:"id,omitempty"`
	Input    string   `json:"input"`
	Expected string   `json:"expected"`
	Points   float64  `json:"points"`
	Visible  bool     `json:"visible"`
	Ordering int      `json:"ordering"`
	Mode     TestMode `json:"mode,omitempty"`
}

// TestCaseRequest is the payload of test-case create and update calls.
type TestCaseRequest struct {
	Input    string   `json:"input,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Points   float64  `json:"points"`
	Visible  bool     `json:"visible"`
	Ordering int      `json:"ordering"`
	Mode     TestMode `json:"mode,omitempty"`
}

// RunRequest is the payload of POST /api/tasks/{id}/run.
type RunRequest struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}
