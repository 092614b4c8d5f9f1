// Package editor implements the task editing engine: task metadata plus its
// test-case list with debounced autosave. Edits mark rows dirty and re-arm a
// trailing timer; the sweep persists dirty rows, creating drafts and adopting
// their server ids. Rows where both input and expected are still blank are
// never sent.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/langcaps"
)

const (
	testDebounce = 800 * time.Millisecond
	metaDebounce = 900 * time.Millisecond
)

var (
	ErrClosed         = errors.New("editor is closed")
	ErrTitleRequired  = errors.New("task title must not be empty")
	ErrNegativePoints = errors.New("max points must not be negative")
	ErrBlankTest      = errors.New("test case has neither input nor expected output")
	ErrSolveSignature = errors.New("starter code does not define solve() required by EVAL tests")
)

// API is the slice of the platform client the editor needs.
type API interface {
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest) (dto.Task, error)
	CreateTest(ctx context.Context, taskID string, req dto.TestCaseRequest) (dto.TestCase, error)
	UpdateTest(ctx context.Context, taskID, testID string, req dto.TestCaseRequest) (dto.TestCase, error)
	DeleteTest(ctx context.Context, taskID, testID string) error
}

// Meta is the editable task metadata.
type Meta struct {
	Title           string
	Description     string
	MaxPoints       float64
	Language        string
	StarterCode     string
	TeacherSolution string
}

// TestRow is one test case in the editor. LocalID is the stable client-side
// identity; ID is empty until the draft is persisted.
type TestRow struct {
	ID       string
	LocalID  string
	Input    string
	Expected string
	Points   float64
	Visible  bool
	Ordering int
	Mode     dto.TestMode

	dirty bool
}

func sameContent(a, b TestRow) bool {
	return a.Input == b.Input && a.Expected == b.Expected && a.Points == b.Points &&
		a.Visible == b.Visible && a.Ordering == b.Ordering && a.Mode == b.Mode
}

func (r TestRow) blankDraft() bool {
	return r.ID == "" && strings.TrimSpace(r.Input) == "" && strings.TrimSpace(r.Expected) == ""
}

// TaskEditor edits one task and its tests.
type TaskEditor struct {
	mu     sync.Mutex
	api    API
	taskID string
	logger zerolog.Logger
	ctx    context.Context

	meta      Meta
	metaDirty bool
	rows      []TestRow

	// gen invalidates in-flight autosave continuations after Close or a
	// synchronous flush.
	gen       uint64
	testTimer *time.Timer
	metaTimer *time.Timer
	closed    bool
	lastErr   error
}

// New builds an editor seeded from the fetched task and its tests. ctx bounds
// background autosave requests.
func New(ctx context.Context, api API, task dto.PublicTask, tests []dto.TestCase, logger zerolog.Logger) *TaskEditor {
	e := &TaskEditor{
		api:    api,
		taskID: task.ID,
		logger: logger.With().Str("component", "task_editor").Str("task_id", task.ID).Logger(),
		ctx:    ctx,
		meta: Meta{
			Title:       task.Title,
			Description: task.Description,
			MaxPoints:   task.MaxPoints,
			Language:    task.Language,
		},
	}
	if task.StarterCode != nil {
		e.meta.StarterCode = *task.StarterCode
	}
	if task.TeacherSolution != nil {
		e.meta.TeacherSolution = *task.TeacherSolution
	}
	for _, t := range tests {
		e.rows = append(e.rows, TestRow{
			ID:       t.ID,
			LocalID:  uuid.NewString(),
			Input:    t.Input,
			Expected: t.Expected,
			Points:   t.Points,
			Visible:  t.Visible,
			Ordering: t.Ordering,
			Mode:     t.Mode,
		})
	}
	return e
}

// Meta returns a snapshot of the current metadata.
func (e *TaskEditor) Meta() Meta {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meta
}

// Tests returns a snapshot of the current rows in order.
func (e *TaskEditor) Tests() []TestRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TestRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// Err returns the most recent background autosave error, if any.
func (e *TaskEditor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// --- metadata edits ---

func (e *TaskEditor) SetTitle(v string)       { e.editMeta(func(m *Meta) { m.Title = v }) }
func (e *TaskEditor) SetDescription(v string) { e.editMeta(func(m *Meta) { m.Description = v }) }
func (e *TaskEditor) SetLanguage(v string)    { e.editMeta(func(m *Meta) { m.Language = v }) }
func (e *TaskEditor) SetStarterCode(v string) { e.editMeta(func(m *Meta) { m.StarterCode = v }) }
func (e *TaskEditor) SetTeacherSolution(v string) {
	e.editMeta(func(m *Meta) { m.TeacherSolution = v })
}

// SetMaxPoints changes the task point cap. Negative values are ignored.
func (e *TaskEditor) SetMaxPoints(v float64) {
	if v < 0 {
		return
	}
	e.editMeta(func(m *Meta) { m.MaxPoints = v })
}

func (e *TaskEditor) editMeta(apply func(*Meta)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	apply(&e.meta)
	e.metaDirty = true
	e.armMetaTimerLocked()
}

// --- test edits ---

// AddTest appends a fresh draft row and returns it. Drafts are not persisted
// until they have content.
func (e *TaskEditor) AddTest() TestRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	row := TestRow{
		LocalID:  uuid.NewString(),
		Points:   1,
		Visible:  true,
		Ordering: len(e.rows),
		Mode:     dto.TestModeIO,
		dirty:    true,
	}
	e.rows = append(e.rows, row)
	e.armTestTimerLocked()
	return row
}

func (e *TaskEditor) SetTestInput(localID, v string) {
	e.editRow(localID, func(r *TestRow) { r.Input = v })
}

func (e *TaskEditor) SetTestExpected(localID, v string) {
	e.editRow(localID, func(r *TestRow) { r.Expected = v })
}

func (e *TaskEditor) SetTestVisible(localID string, v bool) {
	e.editRow(localID, func(r *TestRow) { r.Visible = v })
}

func (e *TaskEditor) SetTestMode(localID string, mode dto.TestMode) {
	e.editRow(localID, func(r *TestRow) { r.Mode = mode })
}

// SetTestPoints assigns points to a row, clamped to what the task cap still
// allows given every other row.
func (e *TaskEditor) SetTestPoints(localID string, v float64) {
	if v < 0 {
		v = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for i := range e.rows {
		if e.rows[i].LocalID != localID {
			continue
		}
		if allowed := e.maxAllowedLocked(i); v > allowed {
			v = allowed
		}
		e.rows[i].Points = v
		e.rows[i].dirty = true
		e.armTestTimerLocked()
		return
	}
}

func (e *TaskEditor) editRow(localID string, apply func(*TestRow)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	for i := range e.rows {
		if e.rows[i].LocalID == localID {
			apply(&e.rows[i])
			e.rows[i].dirty = true
			e.armTestTimerLocked()
			return
		}
	}
}

// DeleteTest removes a row, deleting it on the server when it was persisted.
func (e *TaskEditor) DeleteTest(ctx context.Context, localID string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	idx := -1
	for i := range e.rows {
		if e.rows[i].LocalID == localID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("unknown test row %s", localID)
	}
	serverID := e.rows[idx].ID
	e.mu.Unlock()

	if serverID != "" {
		if err := e.api.DeleteTest(ctx, e.taskID, serverID); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rows {
		if e.rows[i].LocalID == localID {
			e.rows = append(e.rows[:i], e.rows[i+1:]...)
			break
		}
	}
	e.reorderLocked()
	return nil
}

// MoveTest repositions a row; ordering is renumbered and affected rows are
// queued for autosave.
func (e *TaskEditor) MoveTest(localID string, newIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	from := -1
	for i := range e.rows {
		if e.rows[i].LocalID == localID {
			from = i
			break
		}
	}
	if from < 0 {
		return
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(e.rows) {
		newIndex = len(e.rows) - 1
	}
	if newIndex == from {
		return
	}
	row := e.rows[from]
	e.rows = append(e.rows[:from], e.rows[from+1:]...)
	e.rows = append(e.rows[:newIndex], append([]TestRow{row}, e.rows[newIndex:]...)...)
	e.reorderLocked()
	e.armTestTimerLocked()
}

func (e *TaskEditor) reorderLocked() {
	for i := range e.rows {
		if e.rows[i].Ordering != i {
			e.rows[i].Ordering = i
			e.rows[i].dirty = true
		}
	}
}

// --- points arithmetic ---

// SumPoints totals points across all rows.
func (e *TaskEditor) SumPoints() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sum float64
	for _, r := range e.rows {
		sum += r.Points
	}
	return sum
}

// MaxAllowedPoints reports how many points the row may hold without the test
// total exceeding the task cap. Without a cap there is no limit.
func (e *TaskEditor) MaxAllowedPoints(localID string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rows {
		if e.rows[i].LocalID == localID {
			return e.maxAllowedLocked(i)
		}
	}
	return 0
}

func (e *TaskEditor) maxAllowedLocked(idx int) float64 {
	if e.meta.MaxPoints <= 0 {
		return maxFloat
	}
	var others float64
	for i, r := range e.rows {
		if i != idx {
			others += r.Points
		}
	}
	allowed := e.meta.MaxPoints - others
	if allowed < 0 {
		allowed = 0
	}
	return allowed
}

const maxFloat = 1 << 52

// AdoptSumAsMaxPoints sets the task cap to the current test total.
func (e *TaskEditor) AdoptSumAsMaxPoints() {
	sum := e.SumPoints()
	e.editMeta(func(m *Meta) { m.MaxPoints = sum })
}

// --- validation and persistence ---

// Validate checks the editor state is saveable.
func (e *TaskEditor) Validate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if strings.TrimSpace(e.meta.Title) == "" {
		return ErrTitleRequired
	}
	if e.meta.MaxPoints < 0 {
		return ErrNegativePoints
	}
	hasEval := false
	for _, r := range e.rows {
		if r.blankDraft() {
			continue
		}
		if strings.TrimSpace(r.Input) == "" && strings.TrimSpace(r.Expected) == "" {
			return fmt.Errorf("%w (ordering %d)", ErrBlankTest, r.Ordering)
		}
		if r.Mode == dto.TestModeEval {
			hasEval = true
		}
	}
	if hasEval && !langcaps.SolveSignatureOK(e.meta.Language, e.meta.StarterCode) {
		return ErrSolveSignature
	}
	return nil
}

// Save validates and persists everything now: metadata first, then a
// synchronous sweep of dirty test rows. Pending timers are disarmed.
func (e *TaskEditor) Save(ctx context.Context) error {
	if err := e.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.gen++
	e.stopTimersLocked()
	e.metaDirty = true
	e.mu.Unlock()

	if err := e.saveMeta(ctx); err != nil {
		return err
	}
	return e.sweepTests(ctx)
}

// Flush persists pending changes without validation; used when leaving the
// editor with autosave timers still armed.
func (e *TaskEditor) Flush(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.gen++
	e.stopTimersLocked()
	metaDirty := e.metaDirty
	e.mu.Unlock()

	if metaDirty {
		if err := e.saveMeta(ctx); err != nil {
			return err
		}
	}
	return e.sweepTests(ctx)
}

// Close disarms timers and rejects further edits. Pending changes are lost;
// call Flush first to keep them.
func (e *TaskEditor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.gen++
	e.stopTimersLocked()
}

func (e *TaskEditor) stopTimersLocked() {
	if e.testTimer != nil {
		e.testTimer.Stop()
		e.testTimer = nil
	}
	if e.metaTimer != nil {
		e.metaTimer.Stop()
		e.metaTimer = nil
	}
}

func (e *TaskEditor) armTestTimerLocked() {
	gen := e.gen
	if e.testTimer != nil {
		e.testTimer.Stop()
	}
	e.testTimer = time.AfterFunc(testDebounce, func() { e.autosaveTests(gen) })
}

func (e *TaskEditor) armMetaTimerLocked() {
	gen := e.gen
	if e.metaTimer != nil {
		e.metaTimer.Stop()
	}
	e.metaTimer = time.AfterFunc(metaDebounce, func() { e.autosaveMeta(gen) })
}

func (e *TaskEditor) autosaveTests(gen uint64) {
	e.mu.Lock()
	stale := e.closed || gen != e.gen
	e.mu.Unlock()
	if stale {
		return
	}
	if err := e.sweepTests(e.ctx); err != nil {
		e.recordErr(err, "test autosave failed")
	}
}

func (e *TaskEditor) autosaveMeta(gen uint64) {
	e.mu.Lock()
	stale := e.closed || gen != e.gen
	e.mu.Unlock()
	if stale {
		return
	}
	if err := e.saveMeta(e.ctx); err != nil {
		e.recordErr(err, "metadata autosave failed")
	}
}

func (e *TaskEditor) recordErr(err error, msg string) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
	e.logger.Warn().Err(err).Msg(msg)
}

func (e *TaskEditor) saveMeta(ctx context.Context) error {
	e.mu.Lock()
	m := e.meta
	e.mu.Unlock()

	req := dto.UpdateTaskRequest{
		Title:       &m.Title,
		Description: &m.Description,
		MaxPoints:   &m.MaxPoints,
		StarterCode: &m.StarterCode,
		Language:    &m.Language,
	}
	if m.TeacherSolution != "" {
		req.TeacherSolution = &m.TeacherSolution
	}
	if _, err := e.api.UpdateTask(ctx, e.taskID, req); err != nil {
		return err
	}

	e.mu.Lock()
	e.metaDirty = false
	e.mu.Unlock()
	return nil
}

// sweepTests persists every dirty row: updates for persisted rows, creates
// for drafts with content. Created rows adopt the server-assigned id so the
// next edit becomes an update.
func (e *TaskEditor) sweepTests(ctx context.Context) error {
	e.mu.Lock()
	gen := e.gen
	pending := make([]TestRow, 0, len(e.rows))
	for _, r := range e.rows {
		if r.dirty && !r.blankDraft() {
			pending = append(pending, r)
		}
	}
	e.mu.Unlock()

	var firstErr error
	for _, row := range pending {
		req := dto.TestCaseRequest{
			Input:    row.Input,
			Expected: row.Expected,
			Points:   row.Points,
			Visible:  row.Visible,
			Ordering: row.Ordering,
			Mode:     row.Mode,
		}

		var saved dto.TestCase
		var err error
		if row.ID == "" {
			saved, err = e.api.CreateTest(ctx, e.taskID, req)
		} else {
			saved, err = e.api.UpdateTest(ctx, e.taskID, row.ID, req)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		e.mu.Lock()
		if !e.closed {
			for i := range e.rows {
				if e.rows[i].LocalID == row.LocalID {
					if e.rows[i].ID == "" && saved.ID != "" {
						e.rows[i].ID = saved.ID
					}
					// Keep the row dirty when it changed again while this
					// request was in flight.
					if gen == e.gen && sameContent(e.rows[i], row) {
						e.rows[i].dirty = false
					}
					break
				}
			}
		}
		e.mu.Unlock()
	}
	return firstErr
}
