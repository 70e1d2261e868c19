package session

import (
	"context"
	"sync"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

// MemoryStore is the default single-process backend.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]domain.Cart)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.NewCart(), nil
	}
	return cart.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cart.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
