package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop(), opts...)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		method = r.Method
		_ = json.NewEncoder(w).Encode(dto.Health{Status: "ok"})
	}, WithToken("tok-123"))

	_, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "application/json", got.Get("Accept"))
	require.Empty(t, got.Get("Content-Type"), "GET carries no content type")
	require.Equal(t, "Bearer tok-123", got.Get("Authorization"))
}

func TestContentTypeOnlyWithBody(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(dto.AuthResponse{Token: "t"})
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.pl", Password: "sekret"})
	require.NoError(t, err)
	require.Equal(t, "application/json", got)
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode(dto.LessonDetail{ID: "l1"})
	})

	_, err := c.GetLesson(context.Background(), "l1")
	require.NoError(t, err)
	require.Empty(t, got.Get("Authorization"))
}

func TestErrorBodyParsing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"No submission attempts remaining","code":"ATTEMPTS","fields":{"taskId":"bad"}}`))
	})

	_, err := c.Submit(context.Background(), "t1", dto.SubmitRequest{Code: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "ATTEMPTS", apiErr.Code)
	require.Equal(t, "No submission attempts remaining", apiErr.Message)
	require.Equal(t, "bad", apiErr.Fields["taskId"])
	require.True(t, IsStatus(err, http.StatusConflict))
}

func TestErrorFallsBackToRawText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("kaboom"))
	})

	_, err := c.GetPublicTask(context.Background(), "t1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "kaboom", apiErr.Message)
}

func TestEmptySuccessBodyYieldsZeroValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	sub, err := c.Submit(context.Background(), "t1", dto.SubmitRequest{Code: "x"})
	require.NoError(t, err)
	require.Empty(t, sub.ID)
}

func TestRunOutcomeFoldsErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Run is disabled"}`))
	})

	outcome := c.RunTask(context.Background(), "t1", dto.RunRequest{Code: "x"})
	require.True(t, outcome.Failed())
	require.Contains(t, outcome.Error, "Run is disabled")
	require.Nil(t, outcome.Result)
}

func TestRunOutcomeErrorInsidePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"runner offline"}`))
	})

	outcome := c.RunTask(context.Background(), "t1", dto.RunRequest{Code: "x"})
	require.True(t, outcome.Failed())
	require.Equal(t, "runner offline", outcome.Error)
}

func TestRunOutcomeSuccessPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tests":[{"passed":true}]}`))
	})

	outcome := c.RunTask(context.Background(), "t1", dto.RunRequest{Code: "x"})
	require.False(t, outcome.Failed())
	require.NotNil(t, outcome.Result)
}

func TestHooksFireOnceIncludingFailure(t *testing.T) {
	var mu sync.Mutex
	starts, ends := 0, 0
	hooks := Hooks{
		OnLoadingStart: func() { mu.Lock(); starts++; mu.Unlock() },
		OnLoadingEnd:   func() { mu.Lock(); ends++; mu.Unlock() },
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithHooks(hooks))

	_, err := c.GetPublicTask(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, 1, starts)
	require.Equal(t, 1, ends)
}

func TestJoinClassNormalizesCode(t *testing.T) {
	var got dto.JoinClassRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(dto.Classroom{ID: 1, Name: "1A"})
	}, WithToken("tok"))

	_, err := c.JoinClass(context.Background(), "  ab12cd  ")
	require.NoError(t, err)
	require.Equal(t, "AB12CD", got.Code)
}

func TestMoveActivityReturnsServerOrder(t *testing.T) {
	ordered := []dto.LessonActivity{
		{ID: "a2", OrderIndex: 0},
		{ID: "a1", OrderIndex: 1},
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.MoveActivityRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		require.Equal(t, 0, req.NewIndex)
		_ = json.NewEncoder(w).Encode(ordered)
	}, WithToken("tok"))

	got, err := c.MoveActivity(context.Background(), "l1", "a2", 0)
	require.NoError(t, err)
	require.Equal(t, "a2", got[0].ID)
	require.Equal(t, "a1", got[1].ID)
}

func TestRequestValidationRejectsBadPayload(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	require.False(t, called, "invalid requests never reach the network")
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *mapCache) Invalidate(ctx context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
}

func TestCachedReadsSkipNetwork(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(dto.PublicTask{ID: "t1", Title: "Suma"})
	}, WithCache(newMapCache()))

	first, err := c.GetPublicTask(context.Background(), "t1")
	require.NoError(t, err)
	second, err := c.GetPublicTask(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestMutationInvalidatesCache(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			calls++
			_ = json.NewEncoder(w).Encode(dto.PublicTask{ID: "t1", Title: "Suma"})
		case http.MethodPatch:
			_ = json.NewEncoder(w).Encode(dto.Task{ID: "t1"})
		}
	}, WithCache(newMapCache()), WithToken("tok"))

	_, err := c.GetPublicTask(context.Background(), "t1")
	require.NoError(t, err)

	title := "Różnica"
	_, err = c.UpdateTask(context.Background(), "t1", dto.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)

	_, err = c.GetPublicTask(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, 2, calls, "update must drop the cached task")
}
