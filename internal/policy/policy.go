// Package policy decides what a student may do with a task given its
// settings and their latest submission. All attempt gating goes through
// Gate so every surface agrees on the same rules.
package policy

import "github.com/prolearn/prolearn-go/internal/dto"

// Decision is the gate outcome for one student on one task.
type Decision struct {
	AttemptsUsed      int
	MaxAttempts       int
	AttemptsRemaining int
	LimitReached      bool
	CanSubmit         bool
	CanRun            bool
}

// Gate evaluates attempt limits and run/submit permissions. latest may be
// nil when the student has not submitted yet. Task defaults when unset:
// lockAfterSubmit true, allowRunBeforeSubmit true, maxAttempts 1.
//
// The submission's own attempt limit snapshot wins over the task's, so a
// teacher raising the limit mid-assignment takes effect on the next fetch.
func Gate(task *dto.PublicTask, latest *dto.Submission, authed bool) Decision {
	used := 0
	maxAttempts := 0
	if latest != nil {
		if latest.AttemptNumber != nil {
			used = *latest.AttemptNumber
		}
		if latest.MaxAttempts != nil {
			maxAttempts = *latest.MaxAttempts
		}
	}
	if maxAttempts == 0 && task != nil && task.MaxAttempts != nil {
		maxAttempts = *task.MaxAttempts
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	lockAfterSubmit := true
	allowRun := true
	if task != nil {
		if task.LockAfterSubmit != nil {
			lockAfterSubmit = *task.LockAfterSubmit
		}
		if task.AllowRunBeforeSubmit != nil {
			allowRun = *task.AllowRunBeforeSubmit
		}
	}

	limitReached := used >= maxAttempts
	remaining := maxAttempts - used
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		AttemptsUsed:      used,
		MaxAttempts:       maxAttempts,
		AttemptsRemaining: remaining,
		LimitReached:      limitReached,
		CanSubmit:         authed && !limitReached,
		CanRun:            authed && allowRun && !(limitReached && lockAfterSubmit),
	}
}
