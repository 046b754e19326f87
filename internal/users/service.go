package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"odialipi-backend/internal/shared/auth"
	"odialipi-backend/internal/shared/telemetry"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidDisplayName = errors.New("display name must be 2-50 letters and spaces")
)

// Service owns account registration, login, and profile updates.
type Service struct {
	Repo     Repo
	validate *validator.Validate
}

// NewService creates a user service with its validation rules registered.
func NewService(repo Repo) *Service {
	v := validator.New()
	_ = v.RegisterValidation("letters_spaces", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	})
	return &Service{Repo: repo, validate: v}
}

// Register creates a new account. The email is normalized to lower case
// so logins are case-insensitive.
func (s *Service) Register(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := auth.Sign(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	telemetry.Info("user registered", map[string]any{"user_id": u.ID})
	return u, token, nil
}

// Authenticate verifies credentials and issues a token. Unknown emails
// and wrong passwords produce the same error so the response does not
// reveal which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.Sign(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.Repo.GetByID(ctx, id)
}

// SetDisplayName validates and stores the user's chosen name.
func (s *Service) SetDisplayName(ctx context.Context, id, displayName string) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if err := s.validate.Var(displayName, "required,min=2,max=50,letters_spaces"); err != nil {
		return nil, ErrInvalidDisplayName
	}
	return s.Repo.UpdateDisplayName(ctx, id, displayName, time.Now().UTC())
}
