package dto

// QuizSubmitRequest is the payload of POST /api/activities/{id}/quiz/submit.
// Answers holds the chosen option index per question.
type QuizSubmitRequest struct {
	Answers []int `json:"answers"`
}

// QuizResult is the immediate outcome of a quiz submission.
type QuizResult struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Points  float64 `json:"points"`
	Percent float64 `json:"percent"`
}

// QuizAttempt is one recorded quiz attempt. The attempts/me variant omits
// StudentID.
type QuizAttempt struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId,omitempty"`
	Correct   int     `json:"correct"`
	Total     int     `json:"total"`
	Points    float64 `json:"points"`
	CreatedAt string  `json:"createdAt"`
}
