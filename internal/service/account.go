package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cryptolens/cryptolens/internal/auth"
	"github.com/cryptolens/cryptolens/internal/model"
	"github.com/cryptolens/cryptolens/internal/repository"
)

// Account service errors surfaced to the transport layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Session is an authenticated session handed back after signup or login.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"access_token"`
}

// AccountService handles signup, login, and password management.
type AccountService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	resets   repository.ResetTokenRepository
	tokens   *auth.TokenManager
	resetTTL time.Duration
}

// NewAccountService creates an account service.
func NewAccountService(users repository.UserRepository, profiles repository.ProfileRepository, resets repository.ResetTokenRepository, tokens *auth.TokenManager) *AccountService {
	return &AccountService{
		users:    users,
		profiles: profiles,
		resets:   resets,
		tokens:   tokens,
		resetTTL: time.Hour,
	}
}

// Signup registers a new user with an empty profile and returns a session.
func (s *AccountService) Signup(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	// The profile row exists from signup on so onboarding can fill it in.
	if err := s.profiles.Upsert(ctx, model.UserProfile{ID: user.ID, Email: email}); err != nil {
		log.Printf("Error creating profile for %s: %v", user.ID, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{UserID: user.ID, Email: email, Token: token}, nil
}

// Login verifies credentials and returns a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &Session{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// RequestReset creates a password reset token for the given email. Unknown
// emails succeed without a token so addresses cannot be probed.
func (s *AccountService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("loading user: %w", err)
	}

	token, err := s.resets.Create(ctx, user.ID, s.resetTTL)
	if err != nil {
		return "", fmt.Errorf("creating reset token: %w", err)
	}
	return token, nil
}

// ConfirmReset consumes a reset token and sets the new password.
func (s *AccountService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("consuming reset token: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// UpdatePassword changes the password for an authenticated user after
// verifying the current one.
func (s *AccountService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// GetUser returns the account for an authenticated user.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
