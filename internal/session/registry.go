package session

import (
	"sync"

	"github.com/google/uuid"

	"loyalty-system/internal/domain"
)

// Registry maps login tokens to customers. It replaces the ambient
// "current user" state of the original UI with something each handler
// resolves explicitly per request.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]domain.Customer
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]domain.Customer)}
}

func (r *Registry) Create(c domain.Customer) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.sessions[token] = c
	r.mu.Unlock()
	return token
}

func (r *Registry) Resolve(token string) (domain.Customer, bool) {
	r.mu.RLock()
	c, ok := r.sessions[token]
	r.mu.RUnlock()
	return c, ok
}

func (r *Registry) Drop(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
