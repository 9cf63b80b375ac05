package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	goFed "github.com/MrEthical07/goFed"
)

// Memory is an in-memory [goFed.UserStore] for tests and examples. It obeys
// the same contract as [Redis], including last-write-wins refresh saves.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]goFed.UserRecord
	byEmail map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]goFed.UserRecord),
		byEmail: make(map[string]string),
	}
}

// Put inserts or replaces a record verbatim. Test seeding helper.
func (s *Memory) Put(user goFed.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneRecord(user)
	s.byEmail[user.Email] = user.ID
}

// Delete removes a record. Test helper for deleted-account scenarios.
func (s *Memory) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[userID]; ok {
		delete(s.byEmail, user.Email)
		delete(s.users, userID)
	}
}

// GetByID implements [goFed.UserStore].
func (s *Memory) GetByID(_ context.Context, userID string) (goFed.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}
	return cloneRecord(user), nil
}

// FindByEmail implements [goFed.UserStore].
func (s *Memory) FindByEmail(_ context.Context, email string) (goFed.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return goFed.UserRecord{}, false, nil
	}
	user, ok := s.users[id]
	if !ok {
		return goFed.UserRecord{}, false, nil
	}
	return cloneRecord(user), true, nil
}

// Create implements [goFed.UserStore]. Racing creates for the same email
// converge on the first established record.
func (s *Memory) Create(_ context.Context, name, email string) (goFed.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byEmail[email]; ok {
		if user, ok := s.users[id]; ok {
			return cloneRecord(user), nil
		}
	}

	user := goFed.UserRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Permissions: []int{},
		Roles:       []int{},
	}
	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	return cloneRecord(user), nil
}

// SaveRefreshToken implements [goFed.UserStore].
func (s *Memory) SaveRefreshToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return goFed.ErrUserNotFound
	}
	user.RefreshToken = token
	s.users[userID] = user
	return nil
}

// GetIfRefreshTokenMatches implements [goFed.UserStore].
func (s *Memory) GetIfRefreshTokenMatches(_ context.Context, userID, token string) (goFed.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok || token == "" || user.RefreshToken != token {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}
	return cloneRecord(user), nil
}

func cloneRecord(user goFed.UserRecord) goFed.UserRecord {
	out := user
	if user.Permissions != nil {
		out.Permissions = append([]int(nil), user.Permissions...)
	}
	if user.Roles != nil {
		out.Roles = append([]int(nil), user.Roles...)
	}
	return out
}
