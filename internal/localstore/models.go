// Package localstore persists per-user client state in a sqlite file under
// the state directory: the signed-in session, which content activities were
// visited, the lesson selected per class, display preferences and in-flight
// quiz drafts. It is the durable analog of what the browser kept in
// localStorage.
package localstore

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the single signed-in session row.
type Session struct {
	ID        uint    `gorm:"primaryKey"`
	Token     string  `gorm:"type:text;not null"`
	Email     string  `gorm:"size:255;not null"`
	Role      string  `gorm:"size:32;not null"`
	FirstName *string `gorm:"size:255"`
	LastName  *string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisitedContent marks a CONTENT activity as seen by the current user.
// Progress counts these locally since the backend does not track views.
type VisitedContent struct {
	ID         uint   `gorm:"primaryKey"`
	LessonID   string `gorm:"size:64;not null;uniqueIndex:idx_visited_lesson_activity"`
	ActivityID string `gorm:"size:64;not null;uniqueIndex:idx_visited_lesson_activity"`
	CreatedAt  time.Time
}

// SelectedLesson remembers which lesson was last open in each class.
type SelectedLesson struct {
	ID        uint   `gorm:"primaryKey"`
	ClassID   int64  `gorm:"not null;uniqueIndex"`
	LessonID  string `gorm:"size:64;not null"`
	UpdatedAt time.Time
}

// Preference is a key/value display setting (theme, font scale).
type Preference struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:64;not null;uniqueIndex"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// QuizDraft holds an unsaved quiz body per activity so an interrupted edit
// session can resume.
type QuizDraft struct {
	ID         uint           `gorm:"primaryKey"`
	ActivityID string         `gorm:"size:64;not null;uniqueIndex"`
	Body       datatypes.JSON `gorm:"type:json"`
	UpdatedAt  time.Time
}
