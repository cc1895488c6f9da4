package memory

import (
	"sync"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/repository"
)

type sessionRepository struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionRepository creates the process-scoped session slot. Nothing is
// written to disk; a restart loses the session.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Current() (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return domain.Session{}, false
	}
	return *r.session, true
}

func (r *sessionRepository) Set(session domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = &session
}

func (r *sessionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
}
