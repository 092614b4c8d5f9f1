package dto

// ActivityType distinguishes the three kinds of lesson activities.
type ActivityType string

const (
	ActivityContent ActivityType = "CONTENT"
	ActivityTask    ActivityType = "TASK"
	ActivityQuiz    ActivityType = "QUIZ"
)

// LessonListItem is one row of GET /api/classes/{id}/lessons.
type LessonListItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"createdAt"`
	BlocksCount  int    `json:"blocksCount"`
	TasksCount   int    `json:"tasksCount"`
	QuizzesCount int    `json:"quizzesCount"`
	MaxPoints    int    `json:"maxPoints"`
}

// LessonActivity is one unit inside a lesson. Body is a JSON-encoded string
// whose shape depends on the activity type; TaskID is set for TASK activities.
type LessonActivity struct {
	ID         string       `json:"id"`
	Type       ActivityType `json:"type"`
	Title      string       `json:"title"`
	OrderIndex int          `json:"orderIndex"`
	Body       *string      `json:"body,omitempty"`
	TaskID     *string      `json:"taskId,omitempty"`
	CreatedAt  string       `json:"createdAt"`
}

// LessonDetail is the full lesson returned by GET /api/lessons/{id}.
type LessonDetail struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	CreatedAt  string           `json:"createdAt"`
	Tasks      []Task           `json:"tasks"`
	Activities []LessonActivity `json:"activities"`
}

// CreateLessonRequest creates a lesson inside a class.
type CreateLessonRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content,omitempty"`
}

// UpdateLessonRequest updates lesson title and/or content.
type UpdateLessonRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// CreateLessonWithActivitiesRequest creates a lesson together with an initial
// set of activities in one call.
type CreateLessonWithActivitiesRequest struct {
	Title      string                  `json:"title" validate:"required"`
	Content    string                  `json:"content,omitempty"`
	Activities []CreateActivityRequest `json:"activities,omitempty"`
}

// CreateActivityRequest is the payload of POST /api/lessons/{id}/activities.
type CreateActivityRequest struct {
	Type       ActivityType `json:"type" validate:"required,oneof=CONTENT TASK QUIZ"`
	Title      string       `json:"title" validate:"required"`
	OrderIndex *int         `json:"orderIndex,omitempty"`
	Body       *string      `json:"body,omitempty"`
	TaskID     *string      `json:"taskId,omitempty"`
}

// CreateActivityWithTaskRequest creates a TASK activity and its task in one call.
type CreateActivityWithTaskRequest struct {
	Type       ActivityType       `json:"type" validate:"required"`
	Title      string             `json:"title" validate:"required"`
	OrderIndex *int               `json:"orderIndex,omitempty"`
	Body       *string            `json:"body,omitempty"`
	Task       *CreateTaskRequest `json:"task,omitempty"`
}

// UpdateActivityRequest is the payload of PATCH /api/activities/{id}.
type UpdateActivityRequest struct {
	Title      *string `json:"title,omitempty"`
	OrderIndex *int    `json:"orderIndex,omitempty"`
	Body       *string `json:"body,omitempty"`
}

// MoveActivityRequest moves an activity to a new position. The server replies
// with the authoritative, reordered activity list.
type MoveActivityRequest struct {
	NewIndex int `json:"newIndex"`
}

// StudentLessonSummary is one student's totals inside a lesson summary.
type StudentLessonSummary struct {
	StudentID      string  `json:"studentId"`
	Email          *string `json:"email,omitempty"`
	TotalPoints    float64 `json:"totalPoints"`
	MaxPoints      float64 `json:"maxPoints"`
	TasksCompleted int     `json:"tasksCompleted"`
	TotalTasks     int     `json:"totalTasks"`
}

// LessonSummary is the payload of GET /api/lessons/{id}/summary.
type LessonSummary struct {
	LessonID       string                 `json:"lessonId"`
	TotalTasks     int                    `json:"totalTasks"`
	TotalMaxPoints float64                `json:"totalMaxPoints"`
	Students       []StudentLessonSummary `json:"students"`
}
