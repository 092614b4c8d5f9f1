package editor

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prolearn/prolearn-go/internal/dto"
)

type stubAPI struct {
	mu      sync.Mutex
	created []dto.TestCaseRequest
	updated map[string]dto.TestCaseRequest
	deleted []string
	meta    []dto.UpdateTaskRequest
	nextID  int
}

func newStubAPI() *stubAPI {
	return &stubAPI{updated: map[string]dto.TestCaseRequest{}}
}

func (s *stubAPI) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest) (dto.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = append(s.meta, req)
	return dto.Task{ID: taskID}, nil
}

func (s *stubAPI) CreateTest(ctx context.Context, taskID string, req dto.TestCaseRequest) (dto.TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, req)
	s.nextID++
	return dto.TestCase{
		ID:       fmt.Sprintf("srv-%d", s.nextID),
		Input:    req.Input,
		Expected: req.Expected,
		Points:   req.Points,
		Visible:  req.Visible,
		Ordering: req.Ordering,
		Mode:     req.Mode,
	}, nil
}

func (s *stubAPI) UpdateTest(ctx context.Context, taskID, testID string, req dto.TestCaseRequest) (dto.TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated[testID] = req
	return dto.TestCase{ID: testID, Input: req.Input, Expected: req.Expected, Points: req.Points}, nil
}

func (s *stubAPI) DeleteTest(ctx context.Context, taskID, testID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, testID)
	return nil
}

func (s *stubAPI) createdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

func task() dto.PublicTask {
	return dto.PublicTask{ID: "task-1", Title: "Suma", MaxPoints: 10, Language: "javascript"}
}

func TestBlankDraftsAreNeverSent(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())
	defer ed.Close()

	ed.AddTest()
	ed.AddTest()
	require.NoError(t, ed.Flush(context.Background()))
	require.Zero(t, api.createdCount())
}

func TestDraftWithContentIsCreatedAndAdoptsID(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())
	defer ed.Close()

	row := ed.AddTest()
	ed.SetTestInput(row.LocalID, "2 3")
	ed.SetTestExpected(row.LocalID, "5")
	require.NoError(t, ed.Flush(context.Background()))

	require.Equal(t, 1, api.createdCount())
	tests := ed.Tests()
	require.Len(t, tests, 1)
	require.Equal(t, "srv-1", tests[0].ID)

	// The next edit updates instead of creating again.
	ed.SetTestExpected(row.LocalID, "6")
	require.NoError(t, ed.Flush(context.Background()))
	require.Equal(t, 1, api.createdCount())
	require.Contains(t, api.updated, "srv-1")
}

func TestPointsClampAgainstCap(t *testing.T) {
	api := newStubAPI()
	tests := []dto.TestCase{
		{ID: "a", Input: "1", Expected: "1", Points: 4, Ordering: 0},
		{ID: "b", Input: "2", Expected: "2", Points: 3, Ordering: 1},
		{ID: "c", Input: "3", Expected: "3", Points: 1, Ordering: 2},
	}
	ed := New(context.Background(), api, task(), tests, zerolog.Nop())
	defer ed.Close()

	rows := ed.Tests()
	// Cap 10 with 4+3 on the others leaves room for 3.
	require.Equal(t, 3.0, ed.MaxAllowedPoints(rows[2].LocalID))

	ed.SetTestPoints(rows[2].LocalID, 99)
	require.Equal(t, 3.0, ed.Tests()[2].Points)
	require.Equal(t, 10.0, ed.SumPoints())
}

func TestAdoptSumAsMaxPoints(t *testing.T) {
	api := newStubAPI()
	tests := []dto.TestCase{
		{ID: "a", Input: "1", Expected: "1", Points: 2},
		{ID: "b", Input: "2", Expected: "2", Points: 2.5},
	}
	ed := New(context.Background(), api, task(), tests, zerolog.Nop())
	defer ed.Close()

	ed.AdoptSumAsMaxPoints()
	require.Equal(t, 4.5, ed.Meta().MaxPoints)
}

func TestValidate(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())
	defer ed.Close()

	require.NoError(t, ed.Validate())

	ed.SetTitle("   ")
	require.ErrorIs(t, ed.Validate(), ErrTitleRequired)
	ed.SetTitle("Suma")

	// EVAL tests demand a solve() entry point in the starter code.
	row := ed.AddTest()
	ed.SetTestInput(row.LocalID, "1")
	ed.SetTestExpected(row.LocalID, "1")
	ed.SetTestMode(row.LocalID, dto.TestModeEval)
	require.ErrorIs(t, ed.Validate(), ErrSolveSignature)

	ed.SetStarterCode("function solve(input) { return input }")
	require.NoError(t, ed.Validate())
}

func TestSavePersistsMetaAndTests(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())
	defer ed.Close()

	ed.SetDescription("Dodaj dwie liczby")
	row := ed.AddTest()
	ed.SetTestInput(row.LocalID, "2 2")
	ed.SetTestExpected(row.LocalID, "4")

	require.NoError(t, ed.Save(context.Background()))

	api.mu.Lock()
	defer api.mu.Unlock()
	require.NotEmpty(t, api.meta)
	require.Equal(t, "Dodaj dwie liczby", *api.meta[len(api.meta)-1].Description)
	require.Len(t, api.created, 1)
}

func TestDeleteTest(t *testing.T) {
	api := newStubAPI()
	tests := []dto.TestCase{{ID: "a", Input: "1", Expected: "1", Ordering: 0}}
	ed := New(context.Background(), api, task(), tests, zerolog.Nop())
	defer ed.Close()

	rows := ed.Tests()
	require.NoError(t, ed.DeleteTest(context.Background(), rows[0].LocalID))
	require.Empty(t, ed.Tests())
	require.Equal(t, []string{"a"}, api.deleted)
}

func TestMoveTestRenumbersOrdering(t *testing.T) {
	api := newStubAPI()
	tests := []dto.TestCase{
		{ID: "a", Input: "1", Expected: "1", Ordering: 0},
		{ID: "b", Input: "2", Expected: "2", Ordering: 1},
		{ID: "c", Input: "3", Expected: "3", Ordering: 2},
	}
	ed := New(context.Background(), api, task(), tests, zerolog.Nop())
	defer ed.Close()

	rows := ed.Tests()
	ed.MoveTest(rows[2].LocalID, 0)

	moved := ed.Tests()
	require.Equal(t, "c", moved[0].ID)
	require.Equal(t, "a", moved[1].ID)
	for i, r := range moved {
		require.Equal(t, i, r.Ordering)
	}
}

func TestCloseCancelsPendingAutosave(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())

	row := ed.AddTest()
	ed.SetTestInput(row.LocalID, "1")
	ed.SetTestExpected(row.LocalID, "1")
	ed.Close()

	// Give a cancelled debounce timer a chance to fire anyway.
	time.Sleep(testDebounce + 200*time.Millisecond)
	require.Zero(t, api.createdCount())

	require.ErrorIs(t, ed.Flush(context.Background()), ErrClosed)
}

func TestDebouncedAutosaveFires(t *testing.T) {
	api := newStubAPI()
	ed := New(context.Background(), api, task(), nil, zerolog.Nop())
	defer ed.Close()

	row := ed.AddTest()
	ed.SetTestInput(row.LocalID, "7")
	ed.SetTestExpected(row.LocalID, "7")

	require.Eventually(t, func() bool {
		return api.createdCount() == 1
	}, 3*time.Second, 50*time.Millisecond)
}
