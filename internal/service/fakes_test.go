package service

import (
	"context"
	"sort"
	"time"

	"github.com/messagely/messagely/internal/model"
	"github.com/messagely/messagely/internal/repository"
)

// fakeStore is an in-memory UserStore + MessageStore for unit tests.
type fakeStore struct {
	users    map[string]*model.User
	messages map[string]*model.Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*model.User),
		messages: make(map[string]*model.Message),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrUsernameTaken
	}
	clone := *user
	f.users[user.Username] = &clone
	return nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeStore) UserExists(_ context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeStore) TouchLogin(_ context.Context, username string) error {
	user, ok := f.users[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLoginAt = time.Now()
	return nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0, len(f.users))
	for _, user := range f.users {
		profiles = append(profiles, user.PublicProfile())
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Username < profiles[j].Username
	})
	return profiles, nil
}

func (f *fakeStore) CreateMessage(_ context.Context, msg *model.Message) error {
	clone := *msg
	f.messages[msg.ID] = &clone
	return nil
}

func (f *fakeStore) GetMessageByID(_ context.Context, id string) (*model.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	clone := *msg
	f.project(&clone)
	return &clone, nil
}

func (f *fakeStore) MarkMessageRead(_ context.Context, id string) (time.Time, error) {
	msg, ok := f.messages[id]
	if !ok {
		return time.Time{}, repository.ErrMessageNotFound
	}
	now := time.Now()
	msg.ReadAt = &now
	return now, nil
}

func (f *fakeStore) ListMessagesFrom(_ context.Context, username string) ([]model.Message, error) {
	out := make([]model.Message, 0)
	for _, msg := range f.messages {
		if msg.FromUsername == username {
			clone := *msg
			f.project(&clone)
			out = append(out, clone)
		}
	}
	return out, nil
}

func (f *fakeStore) ListMessagesTo(_ context.Context, username string) ([]model.Message, error) {
	out := make([]model.Message, 0)
	for _, msg := range f.messages {
		if msg.ToUsername == username {
			clone := *msg
			f.project(&clone)
			out = append(out, clone)
		}
	}
	return out, nil
}

// project fills the participant profile projections the way the SQL
// joins do.
func (f *fakeStore) project(msg *model.Message) {
	if user, ok := f.users[msg.FromUsername]; ok {
		profile := user.PublicProfile()
		msg.FromUser = &profile
	}
	if user, ok := f.users[msg.ToUsername]; ok {
		profile := user.PublicProfile()
		msg.ToUser = &profile
	}
}
