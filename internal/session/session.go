package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"DONATION_CHECKOUT_GO/internal/modal"
	"DONATION_CHECKOUT_GO/internal/utils"
)

const DefaultTTL = 30 * time.Minute

// Factory builds the modal for a new session. Feature flags are read here,
// once per modal mount.
type Factory func(ctx context.Context) *modal.Modal

type Session struct {
	ID        string
	Modal     *modal.Modal
	CreatedAt time.Time
}

// Registry keeps open modals in memory. Sessions older than the TTL are
// closed on the next Open.
type Registry struct {
	factory Factory
	log     *utils.Logger
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(factory Factory, ttl time.Duration, logger *utils.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &Registry{
		factory:  factory,
		log:      logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

func (r *Registry) Open(ctx context.Context) *Session {
	r.Sweep()

	m := r.factory(ctx)
	m.Open(ctx)
	s := &Session{ID: uuid.NewString(), Modal: m, CreatedAt: r.now()}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.Info("sessao_aberta", map[string]interface{}{"session_id": s.ID})
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	s.Modal.Close()
	r.log.Info("sessao_fechada", map[string]interface{}{"session_id": id})
	return true
}

// Sweep closes expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.CreatedAt.Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Modal.Close()
	}
	if len(expired) > 0 {
		r.log.Info("sessoes_expiradas", map[string]interface{}{"total": len(expired)})
	}
	return len(expired)
}

func (r *Registry) TTL() time.Duration {
	return r.ttl
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
