package registry

import (
	"context"
	"sync"
)

var _ Registry = (*InMemoryRegistry)(nil)

// InMemoryRegistry is the default, process-scoped registry. All
// outstanding refresh tokens are invalidated on restart.
type InMemoryRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		tokens: make(map[string]struct{}),
	}
}

func (r *InMemoryRegistry) Add(_ context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[refreshToken] = struct{}{}
	return nil
}

func (r *InMemoryRegistry) Has(_ context.Context, refreshToken string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[refreshToken]
	return ok, nil
}

func (r *InMemoryRegistry) Remove(_ context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, refreshToken)
	return nil
}
