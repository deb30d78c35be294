package handler

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/messagely/messagely/internal/auth"
	"github.com/messagely/messagely/internal/metrics"
	"github.com/messagely/messagely/internal/model"
	"github.com/messagely/messagely/internal/repository"
	"github.com/messagely/messagely/internal/service"
)

// memStore backs the handler tests with an in-memory UserStore and
// MessageStore so they exercise the real service layer.
type memStore struct {
	users    map[string]*model.User
	messages map[string]*model.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.User),
		messages: make(map[string]*model.Message),
	}
}

func (s *memStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := s.users[user.Username]; ok {
		return repository.ErrUsernameTaken
	}
	clone := *user
	s.users[user.Username] = &clone
	return nil
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memStore) UserExists(_ context.Context, username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *memStore) TouchLogin(_ context.Context, username string) error {
	user, ok := s.users[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLoginAt = time.Now()
	return nil
}

func (s *memStore) ListUsers(_ context.Context) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0, len(s.users))
	for _, user := range s.users {
		profiles = append(profiles, user.PublicProfile())
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Username < profiles[j].Username
	})
	return profiles, nil
}

func (s *memStore) CreateMessage(_ context.Context, msg *model.Message) error {
	clone := *msg
	s.messages[msg.ID] = &clone
	return nil
}

func (s *memStore) GetMessageByID(_ context.Context, id string) (*model.Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	clone := *msg
	s.project(&clone)
	return &clone, nil
}

func (s *memStore) MarkMessageRead(_ context.Context, id string) (time.Time, error) {
	msg, ok := s.messages[id]
	if !ok {
		return time.Time{}, repository.ErrMessageNotFound
	}
	now := time.Now()
	msg.ReadAt = &now
	return now, nil
}

func (s *memStore) ListMessagesFrom(_ context.Context, username string) ([]model.Message, error) {
	out := make([]model.Message, 0)
	for _, msg := range s.messages {
		if msg.FromUsername == username {
			clone := *msg
			s.project(&clone)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (s *memStore) ListMessagesTo(_ context.Context, username string) ([]model.Message, error) {
	out := make([]model.Message, 0)
	for _, msg := range s.messages {
		if msg.ToUsername == username {
			clone := *msg
			s.project(&clone)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (s *memStore) project(msg *model.Message) {
	if user, ok := s.users[msg.FromUsername]; ok {
		profile := user.PublicProfile()
		msg.FromUser = &profile
	}
	if user, ok := s.users[msg.ToUsername]; ok {
		profile := user.PublicProfile()
		msg.ToUser = &profile
	}
}

// testEnv wires real services over the in-memory store.
type testEnv struct {
	store    *memStore
	users    *service.DirectoryService
	messages *service.MessageService
	tokens   *auth.TokenService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	return &testEnv{
		store:    store,
		users:    service.NewDirectoryService(store, auth.NewHasher(1), metrics.NewNoop()),
		messages: service.NewMessageService(store, store, metrics.NewNoop()),
		tokens:   auth.NewTokenService("handler-test-secret", time.Hour),
	}
}

func (e *testEnv) registerUser(t *testing.T, username, password string) {
	t.Helper()
	_, err := e.users.Register(context.Background(), service.RegisterInput{
		Username:  username,
		Password:  password,
		FirstName: username,
		LastName:  "Tester",
		Phone:     "+15550000000",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
}

func (e *testEnv) sendMessage(t *testing.T, from, to, body string) *model.Message {
	t.Helper()
	msg, err := e.messages.Send(context.Background(), from, to, body)
	if err != nil {
		t.Fatalf("send %s -> %s: %v", from, to, err)
	}
	return msg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser stamps an authenticated identity onto the request context,
// standing in for the authentication middleware.
func asUser(ctx context.Context, username string) context.Context {
	return auth.ContextWithIdentity(ctx, &auth.Identity{Username: username})
}
