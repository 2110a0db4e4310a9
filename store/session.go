package store

import (
	"context"
	"log"
	"sync"

	"github.com/proteuswear/storefront-api/models"
)

// Persister stores the durable projection of a try-on result. Writes are
// best-effort: the session store logs and ignores persister errors, they
// never fail the mutation that triggered them.
type Persister interface {
	Put(ctx context.Context, record models.TryOnSessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps at most one current try-on result per session. Reads
// only ever see the in-memory value; the persister is write-only from the
// store's perspective, so a restart leaves sessions looking empty even when
// a metadata record survives.
type SessionStore struct {
	mu        sync.Mutex
	results   map[string]*models.TryOnResult
	persister Persister
}

// NewSessionStore builds a session store. persister may be nil, in which
// case results live in memory only.
func NewSessionStore(persister Persister) *SessionStore {
	return &SessionStore{
		results:   make(map[string]*models.TryOnResult),
		persister: persister,
	}
}

// ProjectRecord maps a full in-memory result to its durable projection.
// Only the product name and a presence flag survive; image payloads are
// excluded deliberately because they may exceed storage quota.
func ProjectRecord(sessionID string, result *models.TryOnResult) models.TryOnSessionRecord {
	return models.TryOnSessionRecord{
		SessionID:   sessionID,
		ProductName: result.ProductName,
		HasResult:   true,
	}
}

// SetResult replaces the session's current result. A nil result clears the
// session, same as Clear.
func (s *SessionStore) SetResult(ctx context.Context, sessionID string, result *models.TryOnResult) {
	if result == nil {
		s.Clear(ctx, sessionID)
		return
	}

	s.mu.Lock()
	s.results[sessionID] = result
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Put(ctx, ProjectRecord(sessionID, result)); err != nil {
			log.Printf("session store: failed to persist try-on record: %v", err)
		}
	}
}

// Clear empties the session and deletes its durable record.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.results, sessionID)
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Delete(ctx, sessionID); err != nil {
			log.Printf("session store: failed to delete try-on record: %v", err)
		}
	}
}

// Result returns the session's current in-memory result, or nil when the
// session has none. Consuming pages treat nil as "no result" and redirect.
func (s *SessionStore) Result(sessionID string) *models.TryOnResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[sessionID]
}
