package tasks

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]*Task
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]*Task{}}
}

// Create stores a copy of the task.
func (r *MemoryRepo) Create(ctx context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

// GetForUser fetches a task owned by the given user.
func (r *MemoryRepo) GetForUser(ctx context.Context, userID, taskID string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[taskID]
	if !ok || t.AssignedTo != userID {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// ClaimNext assigns the oldest claimable task to userID. The repo mutex
// makes the check-and-set atomic, so concurrent callers never share a win.
func (r *MemoryRepo) ClaimNext(ctx context.Context, userID string, now time.Time) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var oldest *Task
	for _, t := range r.items {
		if t.Status != StatusAssigned {
			continue
		}
		if t.AssignedTo != "" && t.AssignedTo != userID {
			continue
		}
		if oldest == nil || t.CreatedAt.Before(oldest.CreatedAt) {
			oldest = t
		}
	}
	if oldest == nil {
		return nil, ErrNoTaskAvailable
	}

	oldest.AssignedTo = userID
	oldest.Status = StatusInProgress
	oldest.UpdatedAt = now
	cp := *oldest
	return &cp, nil
}

// Submit records corrected text for a task the user is working on.
func (r *MemoryRepo) Submit(ctx context.Context, userID, taskID, correctedText string, now time.Time) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[taskID]
	if !ok || t.AssignedTo != userID {
		return nil, ErrNotFound
	}
	if t.Status == StatusSubmitted || t.Status == StatusApproved {
		return nil, ErrAlreadySubmitted
	}
	if t.Status != StatusInProgress {
		return nil, ErrNotFound
	}

	t.CorrectedText = correctedText
	t.Status = StatusSubmitted
	t.UpdatedAt = now
	if t.SubmittedAt == nil {
		at := now
		t.SubmittedAt = &at
	}
	cp := *t
	return &cp, nil
}

// ListByUser lists a user's tasks newest-first with pagination.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, f ListFilter) ([]*Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	all := r.sortedByUpdateDesc(userID, func(t *Task) bool {
		return f.Status == "" || t.Status == f.Status
	})
	total := len(all)

	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return copyTasks(all[start:end]), total, nil
}

// Recent returns the user's most recently updated tasks.
func (r *MemoryRepo) Recent(ctx context.Context, userID string, limit int) ([]*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 5
	}
	all := r.sortedByUpdateDesc(userID, nil)
	if len(all) > limit {
		all = all[:limit]
	}
	return copyTasks(all), nil
}

// CountsByUser aggregates the user's tasks by status.
func (r *MemoryRepo) CountsByUser(ctx context.Context, userID string) (Counts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var c Counts
	for _, t := range r.items {
		if t.AssignedTo != userID {
			continue
		}
		c.Assigned++
		switch t.Status {
		case StatusInProgress:
			c.InProgress++
		case StatusSubmitted:
			c.Submitted++
		case StatusApproved:
			c.Approved++
		}
	}
	return c, nil
}

// CountUpdatedSince counts the user's tasks touched at or after cutoff.
func (r *MemoryRepo) CountUpdatedSince(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, t := range r.items {
		if t.AssignedTo == userID && !t.UpdatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

// MonthlyProgress buckets the user's tasks by the calendar month they
// were created in.
func (r *MemoryRepo) MonthlyProgress(ctx context.Context, userID string, since time.Time) ([]MonthBucket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type key struct{ year, month int }
	buckets := map[key]*MonthBucket{}
	for _, t := range r.items {
		if t.AssignedTo != userID || t.CreatedAt.Before(since) {
			continue
		}
		k := key{t.CreatedAt.Year(), int(t.CreatedAt.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{Year: k.year, Month: k.month}
			buckets[k] = b
		}
		b.Total++
		switch t.Status {
		case StatusSubmitted:
			b.Submitted++
		case StatusApproved:
			b.Approved++
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *MemoryRepo) sortedByUpdateDesc(userID string, keep func(*Task) bool) []*Task {
	var all []*Task
	for _, t := range r.items {
		if t.AssignedTo != userID {
			continue
		}
		if keep != nil && !keep(t) {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func copyTasks(in []*Task) []*Task {
	out := make([]*Task, len(in))
	for i, t := range in {
		cp := *t
		out[i] = &cp
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
