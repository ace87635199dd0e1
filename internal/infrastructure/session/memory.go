// Package session stores register sessions between requests.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/register"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Sessions are stored encoded so a
// caller never shares slices with the stored copy.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewMemoryStore creates an in-process session store. A zero ttl keeps
// sessions until deleted.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]*sync.Mutex),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ domainRepo.SessionRepository = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, branchID uuid.UUID, registerID string) (*register.Session, error) {
	key := register.Key(branchID, registerID)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}

	var sess register.Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *register.Session) error {
	sess.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sess.Key()] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, branchID uuid.UUID, registerID string) error {
	s.mu.Lock()
	delete(s.entries, register.Key(branchID, registerID))
	s.mu.Unlock()
	return nil
}

// Lock serializes events per register within this process
func (s *MemoryStore) Lock(_ context.Context, branchID uuid.UUID, registerID string) (func(), error) {
	key := register.Key(branchID, registerID)

	s.locksMu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
