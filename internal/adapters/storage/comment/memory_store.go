package comment

import (
	"context"
	"sync"
	"time"

	domain "github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

type memoryStore struct {
	mu   sync.RWMutex
	sets map[string]domain.Set
}

// NewMemoryStore returns an in-process Store for ephemeral deployments and
// tests. All methods are safe for concurrent use.
func NewMemoryStore() Store {
	return &memoryStore{sets: make(map[string]domain.Set)}
}

func (s *memoryStore) Save(_ context.Context, set domain.Set) error {
	if err := domain.ValidateSessionID(set.SessionID); err != nil {
		return err
	}
	lines := make([]string, len(set.Lines))
	copy(lines, set.Lines)

	updatedAt := set.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.SessionID] = domain.Set{
		SessionID: set.SessionID,
		Lines:     lines,
		UpdatedAt: updatedAt,
	}
	return nil
}

func (s *memoryStore) Load(_ context.Context, sessionID string) (domain.Set, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return domain.Set{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sets[sessionID]
	if !ok {
		return domain.Set{SessionID: sessionID}, nil
	}
	lines := make([]string, len(stored.Lines))
	copy(lines, stored.Lines)
	return domain.Set{SessionID: sessionID, Lines: lines, UpdatedAt: stored.UpdatedAt}, nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, sessionID)
	return nil
}

func (s *memoryStore) Exists(_ context.Context, sessionID string) (bool, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.sets[sessionID]
	return ok && len(stored.Lines) > 0, nil
}
