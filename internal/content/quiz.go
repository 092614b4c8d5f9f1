package content

import (
	"encoding/json"
	"strings"
)

// defaultQuizMaxPoints mirrors the default a fresh quiz activity is created
// with.
const defaultQuizMaxPoints = 10.0

// QuizChoice is one selectable answer.
type QuizChoice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// QuizQuestion is a single-choice question worth Points.
type QuizQuestion struct {
	Text    string       `json:"text"`
	Choices []QuizChoice `json:"choices"`
	Points  float64      `json:"points"`
}

// QuizBody is the decoded QUIZ activity body.
type QuizBody struct {
	MaxPoints float64        `json:"maxPoints"`
	Questions []QuizQuestion `json:"questions"`
}

// ParseQuizBody decodes a QUIZ body string. A missing or malformed body
// yields an empty question list with the default point cap, never an error.
func ParseQuizBody(raw *string) QuizBody {
	out := QuizBody{MaxPoints: defaultQuizMaxPoints, Questions: []QuizQuestion{}}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return out
	}
	var b QuizBody
	if err := json.Unmarshal([]byte(*raw), &b); err != nil || b.Questions == nil {
		return out
	}
	if b.MaxPoints <= 0 {
		b.MaxPoints = defaultQuizMaxPoints
	}
	return b
}

// Normalize clamps question points to at least 1 and forces exactly one
// correct choice per question (the first marked one wins).
func (b QuizBody) Normalize() QuizBody {
	qs := make([]QuizQuestion, len(b.Questions))
	for i, q := range b.Questions {
		if q.Points <= 0 {
			q.Points = 1
		}
		seen := false
		choices := make([]QuizChoice, len(q.Choices))
		for j, c := range q.Choices {
			if c.Correct && seen {
				c.Correct = false
			}
			if c.Correct {
				seen = true
			}
			choices[j] = c
		}
		q.Choices = choices
		qs[i] = q
	}
	return QuizBody{MaxPoints: b.MaxPoints, Questions: qs}
}

// SumPoints totals the per-question points.
func (b QuizBody) SumPoints() float64 {
	var sum float64
	for _, q := range b.Questions {
		sum += q.Points
	}
	return sum
}

// Encode serializes the quiz body back into the activity's string form.
func (b QuizBody) Encode() (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
