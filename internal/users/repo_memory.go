package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used for local development and tests.
type MemoryRepo struct {
	mu    sync.Mutex
	items map[string]*User
}

// NewMemoryRepo creates an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: map[string]*User{}}
}

// Create stores a copy of the user, rejecting duplicate emails.
func (r *MemoryRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

// GetByEmail fetches a user by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// GetByID fetches a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// UpdateDisplayName sets the user's display name.
func (r *MemoryRepo) UpdateDisplayName(ctx context.Context, id, displayName string, now time.Time) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.DisplayName = displayName
	u.UpdatedAt = now
	cp := *u
	return &cp, nil
}

var _ Repo = (*MemoryRepo)(nil)
