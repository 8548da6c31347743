package service

import (
	"context"
	"time"

	"github.com/vinash85/polypLabeler/internal/models"
	"github.com/vinash85/polypLabeler/internal/repository"
)

// In-memory fakes for the repository interfaces, shared by the service tests.

type fakeUserRepository struct {
	users  map[uint64]*models.User
	nextID uint64
}

func newFakeUserRepository(users map[uint64]*models.User) *fakeUserRepository {
	nextID := uint64(1)
	for id := range users {
		if id >= nextID {
			nextID = id + 1
		}
	}
	return &fakeUserRepository{users: users, nextID: nextID}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	f.users[userID].Password = passwordHash
	return nil
}

func (f *fakeUserRepository) SetResetToken(ctx context.Context, userID uint64, tokenHash string) error {
	f.users[userID].PasswordResetToken.String = tokenHash
	f.users[userID].PasswordResetToken.Valid = true
	return nil
}

func (f *fakeUserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.PasswordResetToken.Valid && u.PasswordResetToken.String == tokenHash {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) ClearResetToken(ctx context.Context, userID uint64) error {
	f.users[userID].PasswordResetToken.Valid = false
	f.users[userID].PasswordResetToken.String = ""
	return nil
}

func (f *fakeUserRepository) AdvanceProgress(ctx context.Context, userID uint64) error {
	f.users[userID].Progress++
	return nil
}

func (f *fakeUserRepository) SetProgress(ctx context.Context, userID uint64, value int32) error {
	f.users[userID].Progress = value
	return nil
}

func (f *fakeUserRepository) GetProgress(ctx context.Context, userID uint64) (int32, error) {
	return f.users[userID].Progress, nil
}

type fakeSessionRepository struct {
	sessions map[string]uint64
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]uint64)}
}

func (f *fakeSessionRepository) Set(ctx context.Context, token string, userID uint64, ttl time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionRepository) Get(ctx context.Context, token string) (uint64, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionRepository) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeAnswerRepository struct {
	records map[string][]models.AnswerRecord

	appendErr error
	changeErr error
}

func newFakeAnswerRepository() *fakeAnswerRepository {
	return &fakeAnswerRepository{records: make(map[string][]models.AnswerRecord)}
}

func (f *fakeAnswerRepository) Append(ctx context.Context, username, itemKey, answer string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.records[username] = append(f.records[username], models.AnswerRecord{ItemKey: itemKey, Answer: answer})
	return nil
}

func (f *fakeAnswerRepository) ListAnswered(ctx context.Context, username string) ([]string, error) {
	keys := []string{}
	for _, rec := range f.records[username] {
		keys = append(keys, rec.ItemKey)
	}
	return keys, nil
}

func (f *fakeAnswerRepository) GetAnswer(ctx context.Context, username, itemKey string) (string, error) {
	for _, rec := range f.records[username] {
		if rec.ItemKey == itemKey {
			return rec.Answer, nil
		}
	}
	return "", repository.ErrAnswerNotFound
}

func (f *fakeAnswerRepository) ChangeAnswer(ctx context.Context, username, itemKey, newAnswer string) error {
	if f.changeErr != nil {
		return f.changeErr
	}
	recs, ok := f.records[username]
	if !ok {
		return repository.ErrAnswerNotFound
	}
	for i := range recs {
		if recs[i].ItemKey == itemKey {
			recs[i].Answer = newAnswer
			return nil
		}
	}
	return repository.ErrAnswerNotFound
}
