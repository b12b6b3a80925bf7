package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/ai-problem-solver/internal/domain/session"
)

type memorySessionEntry struct {
	session   session.Session
	lockToken string
	expiresAt time.Time
}

type memorySessionRepo struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*memorySessionEntry
	now     func() time.Time
}

// NewMemorySessionRepo keeps sessions in process memory. Entries expire ttl
// after their last write; ttl <= 0 disables expiry.
func NewMemorySessionRepo(ttl time.Duration) session.Repository {
	return &memorySessionRepo{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*memorySessionEntry),
		now:     time.Now,
	}
}

func (r *memorySessionRepo) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	r.entries[s.ID] = &memorySessionEntry{session: copySession(s), expiresAt: r.expiry()}
	return nil
}

func (r *memorySessionRepo) FindByID(_ context.Context, id uuid.UUID) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(id)
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	s := copySession(&e.session)
	return &s, nil
}

func (r *memorySessionRepo) Save(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(s.ID)
	if !ok {
		return session.ErrSessionNotFound
	}
	e.session = copySession(s)
	e.expiresAt = r.expiry()
	return nil
}

func (r *memorySessionRepo) TryAcquire(_ context.Context, id uuid.UUID) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.live(id)
	if !ok {
		return "", false, session.ErrSessionNotFound
	}
	if e.lockToken != "" {
		return "", false, nil
	}
	e.lockToken = uuid.NewString()
	return e.lockToken, true, nil
}

func (r *memorySessionRepo) Release(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok && token != "" && e.lockToken == token {
		e.lockToken = ""
	}
	return nil
}

// live must be called with mu held.
func (r *memorySessionRepo) live(id uuid.UUID) (*memorySessionEntry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) && e.lockToken == "" {
		delete(r.entries, id)
		return nil, false
	}
	return e, true
}

func (r *memorySessionRepo) evictExpired() {
	now := r.now()
	for id, e := range r.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) && e.lockToken == "" {
			delete(r.entries, id)
		}
	}
}

func (r *memorySessionRepo) expiry() time.Time {
	if r.ttl <= 0 {
		return time.Time{}
	}
	return r.now().Add(r.ttl)
}

func copySession(s *session.Session) session.Session {
	c := *s
	c.Result = s.Result.Clone()
	return c
}
