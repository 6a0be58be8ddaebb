package userprofile

import (
	"context"
	"errors"
	"sync"
)

// MemoryService is an in-memory Service for tests and single-process use.
type MemoryService struct {
	profiles map[string]*Profile
	mu       sync.RWMutex
}

// NewMemoryService creates an empty in-memory profile store.
func NewMemoryService() *MemoryService {
	return &MemoryService{profiles: make(map[string]*Profile)}
}

// Lookup returns a deep copy of the stored profile, or ErrNotFound.
func (m *MemoryService) Lookup(ctx context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	profile, ok := m.profiles[userID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return profile.Clone(), nil
}

// Save stores a deep copy of the profile, keyed by its user id.
func (m *MemoryService) Save(ctx context.Context, profile *Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.Join(ErrInvalidProfile, errors.New("missing user id"))
	}

	m.mu.Lock()
	m.profiles[profile.UserID] = profile.Clone()
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored profiles.
func (m *MemoryService) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}
