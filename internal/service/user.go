package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/messagely/messagely/internal/auth"
	"github.com/messagely/messagely/internal/metrics"
	"github.com/messagely/messagely/internal/model"
	"github.com/messagely/messagely/internal/repository"
)

// UserStore is the persistence surface the directory service needs.
// Implemented by repository.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	TouchLogin(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]model.Profile, error)
}

// DirectoryService registers users, verifies credentials, and serves
// user profiles. It is the only component that mutates user rows.
type DirectoryService struct {
	store   UserStore
	hasher  *auth.Hasher
	metrics metrics.Recorder
	now     func() time.Time
}

// NewDirectoryService creates a DirectoryService.
func NewDirectoryService(store UserStore, hasher *auth.Hasher, recorder metrics.Recorder) *DirectoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DirectoryService{
		store:   store,
		hasher:  hasher,
		metrics: recorder,
		now:     time.Now,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a new user with a salted one-way password hash and
// both timestamps stamped to now. Fails with ErrUsernameTaken if the
// username exists and ErrMissingFields if username or password is empty.
func (s *DirectoryService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &model.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		JoinedAt:     now,
		LastLoginAt:  now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Authenticate reports whether the credentials are valid. A missing
// user and a wrong password both return false through the same path,
// so callers cannot probe for account existence.
func (s *DirectoryService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return false, nil
		}
		return false, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}

	if ok {
		s.metrics.IncLoginSuccess()
	} else {
		s.metrics.IncLoginFailure()
	}

	return ok, nil
}

// TouchLogin stamps the user's last_login_at. Fails with
// ErrUserNotFound if the username does not exist.
func (s *DirectoryService) TouchLogin(ctx context.Context, username string) error {
	if err := s.store.TouchLogin(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetProfile returns the detailed public profile for a username.
// Fails with ErrUserNotFound if absent.
func (s *DirectoryService) GetProfile(ctx context.Context, username string) (*model.ProfileDetail, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	detail := user.Detail()
	return &detail, nil
}

// ListAll returns public profiles for every user, ordered by username
// ascending.
func (s *DirectoryService) ListAll(ctx context.Context) ([]model.Profile, error) {
	return s.store.ListUsers(ctx)
}
