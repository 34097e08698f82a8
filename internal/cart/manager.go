package cart

import (
	"context"
	"fmt"
	"sync"

	"marketgo/internal/notify"
	"marketgo/internal/storage"
)

// Manager hands out one cart engine per user, creating and rehydrating
// each engine on first use. Engines live for the manager's lifetime.
type Manager struct {
	mu       sync.Mutex
	engines  map[string]*Engine
	store    storage.KeyValueStore
	notifier notify.Notifier
}

// NewManager creates a cart manager over the given durable store
func NewManager(store storage.KeyValueStore, notifier notify.Notifier) *Manager {
	return &Manager{
		engines:  make(map[string]*Engine),
		store:    store,
		notifier: notifier,
	}
}

// Engine returns the cart engine for the given user, creating it if needed.
// The storage key is scoped per user so carts never bleed across accounts.
func (m *Manager) Engine(ctx context.Context, userID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[userID]; ok {
		return engine
	}

	engine := NewEngine(ctx, m.store, fmt.Sprintf("cart:%s", userID), m.notifier)
	m.engines[userID] = engine
	return engine
}
