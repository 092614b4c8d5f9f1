package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the sqlite-backed client state database.
type Store struct {
	db *gorm.DB
}

// Open connects to (and if needed creates) the state database at path,
// migrating the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("state db path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}
	if err := db.AutoMigrate(&Session{}, &VisitedContent{}, &SelectedLesson{}, &Preference{}, &QuizDraft{}); err != nil {
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveSession replaces the stored session with the given one.
func (s *Store) SaveSession(sess Session) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Session{}).Error; err != nil {
			return err
		}
		sess.ID = 0
		return tx.Create(&sess).Error
	})
}

// LoadSession returns the stored session, or (nil, nil) when signed out.
func (s *Store) LoadSession() (*Session, error) {
	var sess Session
	err := s.db.First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ClearSession signs the local user out.
func (s *Store) ClearSession() error {
	return s.db.Where("1 = 1").Delete(&Session{}).Error
}

// MarkVisited records a content activity as seen. Repeat visits are no-ops.
func (s *Store) MarkVisited(lessonID, activityID string) error {
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&VisitedContent{LessonID: lessonID, ActivityID: activityID}).Error
}

// VisitedActivities returns the set of visited activity ids within a lesson.
func (s *Store) VisitedActivities(lessonID string) (map[string]bool, error) {
	var rows []VisitedContent
	if err := s.db.Where("lesson_id = ?", lessonID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[r.ActivityID] = true
	}
	return out, nil
}

// SetSelectedLesson remembers the open lesson for a class.
func (s *Store) SetSelectedLesson(classID int64, lessonID string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lesson_id", "updated_at"}),
	}).Create(&SelectedLesson{ClassID: classID, LessonID: lessonID}).Error
}

// SelectedLessonFor returns the remembered lesson id for a class, or "".
func (s *Store) SelectedLessonFor(classID int64) (string, error) {
	var row SelectedLesson
	err := s.db.Where("class_id = ?", classID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.LessonID, nil
}

// SetPreference stores a display preference.
func (s *Store) SetPreference(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Preference{Key: key, Value: value}).Error
}

// GetPreference reads a display preference, or "" when unset.
func (s *Store) GetPreference(key string) (string, error) {
	var row Preference
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// SaveQuizDraft stores an in-progress quiz body for an activity. body must
// marshal to JSON.
func (s *Store) SaveQuizDraft(activityID string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode quiz draft: %w", err)
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "activity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&QuizDraft{ActivityID: activityID, Body: datatypes.JSON(raw)}).Error
}

// LoadQuizDraft decodes a stored quiz draft into out. Returns false when no
// draft exists.
func (s *Store) LoadQuizDraft(activityID string, out any) (bool, error) {
	var row QuizDraft
	err := s.db.Where("activity_id = ?", activityID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(row.Body, out); err != nil {
		return false, fmt.Errorf("decode quiz draft: %w", err)
	}
	return true, nil
}

// DeleteQuizDraft discards a stored draft after a successful save.
func (s *Store) DeleteQuizDraft(activityID string) error {
	return s.db.Where("activity_id = ?", activityID).Delete(&QuizDraft{}).Error
}
