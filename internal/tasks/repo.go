package tasks

import (
	"context"
	"time"
)

// ListFilter narrows and pages ListByUser results.
type ListFilter struct {
	Status Status // optional; zero value means all statuses
	Page   int    // 1-based
	Limit  int
}

// Counts aggregates a user's tasks. Assigned is the total ever given to
// the user; the per-status fields count strictly by current status, so
// an approved task no longer counts as submitted.
type Counts struct {
	Assigned   int `json:"assigned"`
	InProgress int `json:"inProgress"`
	Submitted  int `json:"submitted"`
	Approved   int `json:"approved"`
}

// MonthBucket is one calendar month of task activity for a user.
type MonthBucket struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
}

// Repo is the storage contract for correction tasks.
type Repo interface {
	Create(ctx context.Context, t *Task) error
	// GetForUser fetches a task only when it belongs to the given user.
	GetForUser(ctx context.Context, userID, taskID string) (*Task, error)
	// ClaimNext atomically assigns the oldest claimable task to userID and
	// moves it to in_progress. Returns ErrNoTaskAvailable when the pool is
	// empty. At most one caller can win a given task.
	ClaimNext(ctx context.Context, userID string, now time.Time) (*Task, error)
	// Submit records the corrected text for a task the user owns and is
	// working on. Returns ErrNotFound when the task does not exist or is
	// not owned by userID, ErrAlreadySubmitted when it already left the
	// in_progress state.
	Submit(ctx context.Context, userID, taskID, correctedText string, now time.Time) (*Task, error)
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]*Task, int, error)
	// Recent returns the user's most recently updated tasks, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]*Task, error)
	CountsByUser(ctx context.Context, userID string) (Counts, error)
	// CountUpdatedSince counts the user's tasks touched at or after cutoff.
	CountUpdatedSince(ctx context.Context, userID string, cutoff time.Time) (int, error)
	// MonthlyProgress buckets the user's tasks by the calendar month they
	// were created in, oldest bucket first.
	MonthlyProgress(ctx context.Context, userID string, since time.Time) ([]MonthBucket, error)
}
