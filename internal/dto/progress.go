package dto

// ClassProgressTask describes one gradable column of the class progress matrix.
type ClassProgressTask struct {
	TaskID      string   `json:"taskId"`
	Title       string   `json:"title"`
	MaxPoints   *float64 `json:"maxPoints,omitempty"`
	Type        string   `json:"type"`
	LessonID    string   `json:"lessonId"`
	LessonTitle string   `json:"lessonTitle"`
	ActivityID  string   `json:"activityId"`
}

// ClassProgressResult is one cell of the class progress matrix.
type ClassProgressResult struct {
	StudentID string   `json:"studentId"`
	TaskID    string   `json:"taskId"`
	Status    string   `json:"status"`
	Points    *float64 `json:"points,omitempty"`
}

// ClassProgress is the payload of GET /api/classes/{id}/progress.
type ClassProgress struct {
	ClassID  int64                 `json:"classId"`
	LessonID *string               `json:"lessonId,omitempty"`
	Students []ClassStudent        `json:"students"`
	Tasks    []ClassProgressTask   `json:"tasks"`
	Results  []ClassProgressResult `json:"results"`
}

// OverviewLesson is one lesson column of the class-wide overview.
type OverviewLesson struct {
	LessonID       string  `json:"lessonId"`
	Title          string  `json:"title"`
	TotalTasks     int     `json:"totalTasks"`
	TotalMaxPoints float64 `json:"totalMaxPoints"`
}

// OverviewResult is one student x lesson cell of the class-wide overview.
type OverviewResult struct {
	StudentID      string  `json:"studentId"`
	LessonID       string  `json:"lessonId"`
	TasksCompleted int     `json:"tasksCompleted"`
	TotalTasks     int     `json:"totalTasks"`
	PointsEarned   float64 `json:"pointsEarned"`
	MaxPoints      float64 `json:"maxPoints"`
}

// ClassProgressOverview is the payload of GET /api/classes/{id}/progress/overview.
type ClassProgressOverview struct {
	ClassID  int64            `json:"classId"`
	Lessons  []OverviewLesson `json:"lessons"`
	Students []ClassStudent   `json:"students"`
	Results  []OverviewResult `json:"results"`
}
