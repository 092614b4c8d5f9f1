package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func subWithAttempt(n int) *dto.Submission {
	return &dto.Submission{AttemptNumber: intPtr(n)}
}

func TestGateDefaultsSingleAttempt(t *testing.T) {
	d := Gate(&dto.PublicTask{}, nil, true)
	require.Equal(t, 0, d.AttemptsUsed)
	require.Equal(t, 1, d.MaxAttempts)
	require.Equal(t, 1, d.AttemptsRemaining)
	require.False(t, d.LimitReached)
	require.True(t, d.CanSubmit)
	require.True(t, d.CanRun)
}

func TestGateAttemptArithmetic(t *testing.T) {
	cases := []struct {
		name          string
		taskMax       *int
		subMax        *int
		attempt       *int
		wantMax       int
		wantRemaining int
		wantLimit     bool
	}{
		{"no limits, one used", nil, nil, intPtr(1), 1, 0, true},
		{"task limit 3, one used", intPtr(3), nil, intPtr(1), 3, 2, false},
		{"submission snapshot wins", intPtr(5), intPtr(2), intPtr(2), 2, 0, true},
		{"zero max clamps to one", intPtr(0), nil, nil, 1, 1, false},
		{"used beyond max", intPtr(2), nil, intPtr(5), 2, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := &dto.PublicTask{MaxAttempts: tc.taskMax}
			var latest *dto.Submission
			if tc.attempt != nil || tc.subMax != nil {
				latest = &dto.Submission{AttemptNumber: tc.attempt, MaxAttempts: tc.subMax}
			}
			d := Gate(task, latest, true)
			require.Equal(t, tc.wantMax, d.MaxAttempts)
			require.Equal(t, tc.wantRemaining, d.AttemptsRemaining)
			require.Equal(t, tc.wantLimit, d.LimitReached)
			require.Equal(t, !tc.wantLimit, d.CanSubmit)
		})
	}
}

func TestGateRunPermission(t *testing.T) {
	limited := &dto.PublicTask{MaxAttempts: intPtr(1)}

	// Anonymous users can never run or submit.
	d := Gate(limited, nil, false)
	require.False(t, d.CanRun)
	require.False(t, d.CanSubmit)

	// Run disabled by the task setting.
	d = Gate(&dto.PublicTask{AllowRunBeforeSubmit: boolPtr(false)}, nil, true)
	require.False(t, d.CanRun)

	// Limit reached with the default lock blocks running too.
	d = Gate(limited, subWithAttempt(1), true)
	require.True(t, d.LimitReached)
	require.False(t, d.CanRun)

	// Unlocked tasks stay runnable after the limit.
	open := &dto.PublicTask{MaxAttempts: intPtr(1), LockAfterSubmit: boolPtr(false)}
	d = Gate(open, subWithAttempt(1), true)
	require.True(t, d.LimitReached)
	require.True(t, d.CanRun)
	require.False(t, d.CanSubmit)
}

func TestGateNilTask(t *testing.T) {
	d := Gate(nil, subWithAttempt(2), true)
	require.Equal(t, 2, d.AttemptsUsed)
	require.Equal(t, 1, d.MaxAttempts)
	require.True(t, d.LimitReached)
	require.False(t, d.CanRun)
}
