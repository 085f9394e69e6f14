// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linkvigia/linkvigia/internal/auth"
	"github.com/linkvigia/linkvigia/internal/model"
	"github.com/linkvigia/linkvigia/internal/quota"
	"github.com/linkvigia/linkvigia/internal/repository"
)

// Service errors.
var (
	ErrMissingFields      = errors.New("required fields missing")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash is compared against when the email is unknown, so lookup
// misses and wrong passwords take the same time.
var dummyHash, _ = auth.HashPassword("linkvigia-timing-pad")

// AccountService handles registration, login and profile logic.
type AccountService struct {
	repo *repository.Repository
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// RegisterInput defines input for registering an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string // optional; a random one is generated when empty
	IP       string // observed source address of the request
}

// Register creates a new account on the free plan.
//
// When no password is supplied a random one is generated, hashed and
// discarded; such accounts cannot be accessed by password afterwards.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	// Free-accounts-per-IP limit applies before anything is persisted.
	existing, err := s.repo.CountFreeAccountsByIP(ctx, input.IP)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := quota.CheckSignupIP(model.PlanFree, existing); err != nil {
		return nil, err
	}

	password := input.Password
	if password == "" {
		password, err = auth.GeneratePassword()
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        ulid.Make().String(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Plan:      model.PlanFree,
		CreatedIP: input.IP,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return user, nil
}

// Authenticate verifies an email/password pair.
// Unknown email and wrong password fail identically to prevent
// account enumeration.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !auth.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Profile retrieves a user together with their resource counts.
func (s *AccountService) Profile(ctx context.Context, userID string) (*model.User, *model.UserStats, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("profile: %w", err)
	}

	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("profile: %w", err)
	}

	return user, stats, nil
}

// UpdateProfile updates the caller's name and company.
func (s *AccountService) UpdateProfile(ctx context.Context, userID, name, company string) error {
	err := s.repo.UpdateUserProfile(ctx, userID, strings.TrimSpace(name), strings.TrimSpace(company))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
