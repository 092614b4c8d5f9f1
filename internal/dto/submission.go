package dto

// SubmissionStatus is the lifecycle state of a task submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionGraded    SubmissionStatus = "GRADED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

// Submission is one graded evaluation of student code for a task.
// EffectiveScore is the score that counts: the manual override when a teacher
// set one, otherwise the automatic score.
type Submission struct {
	ID             string           `json:"id"`
	TaskID         string           `json:"taskId"`
	StudentID      string           `json:"studentId"`
	Content        string           `json:"content"`
	Status         SubmissionStatus `json:"status"`
	Points         *float64         `json:"points,omitempty"`
	Feedback       *string          `json:"feedback,omitempty"`
	GradedAt       *string          `json:"gradedAt,omitempty"`
	GradedBy       *string          `json:"gradedBy,omitempty"`
	CreatedAt      string           `json:"createdAt"`
	Code           string           `json:"code"`
	AutoScore      *float64         `json:"autoScore,omitempty"`
	Stdout         *string          `json:"stdout,omitempty"`
	TestReport     *string          `json:"testReport,omitempty"`
	AttemptNumber  *int             `json:"attemptNumber,omitempty"`
	ManualScore    *float64         `json:"manualScore,omitempty"`
	TeacherComment *string          `json:"teacherComment,omitempty"`
	MaxAttempts    *int             `json:"maxAttempts,omitempty"`
	MaxPoints      *float64         `json:"maxPoints,omitempty"`
	EffectiveScore *float64         `json:"effectiveScore,omitempty"`
}

// SubmitRequest is the payload of POST /api/tasks/{id}/submissions.
type SubmitRequest struct {
	Content string `json:"content"`
	Code    string `json:"code"`
}

// GradeRequest is the payload of POST /api/submissions/{id}/grade. A nil
// ManualScore clears the override so the automatic score counts again.
type GradeRequest struct {
	ManualScore    *float64 `json:"manualScore"`
	TeacherComment string   `json:"teacherComment"`
}

// ClassSubmission pairs a submission with its lesson/task/student context for
// the class-wide submissions listing.
type ClassSubmission struct {
	Submission       Submission `json:"submission"`
	LessonID         *string    `json:"lessonId,omitempty"`
	LessonTitle      *string    `json:"lessonTitle,omitempty"`
	TaskTitle        *string    `json:"taskTitle,omitempty"`
	StudentEmail     *string    `json:"studentEmail,omitempty"`
	StudentFirstName *string    `json:"studentFirstName,omitempty"`
	StudentLastName  *string    `json:"studentLastName,omitempty"`
}
