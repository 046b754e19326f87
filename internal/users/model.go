package users

import "time"

// User is a registered contributor.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the profile shape returned to clients. IsFirstTime flags
// accounts that have not chosen a display name yet, which drives the
// onboarding prompt.
type Summary struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	IsFirstTime bool      `json:"isFirstTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Summarize converts a user to its client-facing shape.
func Summarize(u *User) Summary {
	return Summary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsFirstTime: u.DisplayName == "",
		CreatedAt:   u.CreatedAt,
	}
}
