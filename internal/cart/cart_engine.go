package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/internal/storage"
	"marketgo/utils"
)

// serviceFeeRate is the fixed surcharge applied to the cart subtotal
const serviceFeeRate = 0.05

// Engine owns the set of items a single user intends to purchase. It is
// the authoritative in-memory record; every mutation is also written to
// the durable key-value store under the engine's storage key. A failed
// write is logged and the in-memory state stays authoritative.
type Engine struct {
	mu          sync.RWMutex
	items       []models.CartItem
	store       storage.KeyValueStore
	storageKey  string
	notifier    notify.Notifier
	subscribers []func()
}

// NewEngine creates a cart engine and rehydrates it from the store.
// An absent or unparsable saved cart is treated as empty, never as a
// fatal condition.
func NewEngine(ctx context.Context, store storage.KeyValueStore, storageKey string, notifier notify.Notifier) *Engine {
	e := &Engine{
		store:      store,
		storageKey: storageKey,
		notifier:   notifier,
	}

	raw, ok, err := store.Get(ctx, storageKey)
	if err != nil {
		utils.Warn("cart: failed to load saved cart, starting empty", map[string]any{
			"key":   storageKey,
			"error": err.Error(),
		})
		return e
	}
	if !ok {
		return e
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		utils.Warn("cart: saved cart is unparsable, starting empty", map[string]any{
			"key":   storageKey,
			"error": err.Error(),
		})
		return e
	}
	e.items = items

	return e
}

// Subscribe registers a callback invoked after every successful mutation
func (e *Engine) Subscribe(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// Items returns a copy of the current cart contents
func (e *Engine) Items() []models.CartItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]models.CartItem(nil), e.items...)
}

// AddItem merges the given item into the cart. An item with the same id
// accumulates quantity; everything else about the existing entry is left
// unchanged. A new id is appended. Returns the resulting entry and
// whether it was newly added (false means an existing entry was updated).
func (e *Engine) AddItem(ctx context.Context, item models.CartItem) (models.CartItem, bool) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	e.mu.Lock()
	added := true
	var entry models.CartItem
	for i := range e.items {
		if e.items[i].ID == item.ID {
			e.items[i].Quantity += item.Quantity
			entry = e.items[i]
			added = false
			break
		}
	}
	if added {
		e.items = append(e.items, item)
		entry = item
	}
	e.mu.Unlock()

	if added {
		e.notifier.Notify(fmt.Sprintf("Added %q to your cart", entry.Title), notify.SeveritySuccess)
	} else {
		e.notifier.Notify(fmt.Sprintf("Updated %q in your cart", entry.Title), notify.SeveritySuccess)
	}

	e.persist(ctx)
	e.notifyChanged()
	return entry, added
}

// RemoveItem deletes the entry with the given id. Returns the removed
// entry and false when no entry matched (a no-op).
func (e *Engine) RemoveItem(ctx context.Context, id string) (models.CartItem, bool) {
	e.mu.Lock()
	var removed models.CartItem
	found := false
	for i := range e.items {
		if e.items[i].ID == id {
			removed = e.items[i]
			e.items = append(e.items[:i], e.items[i+1:]...)
			found = true
			break
		}
	}
	e.mu.Unlock()

	if !found {
		return models.CartItem{}, false
	}

	e.notifier.Notify(fmt.Sprintf("Removed %q from your cart", removed.Title), notify.SeveritySuccess)
	e.persist(ctx)
	e.notifyChanged()
	return removed, true
}

// SetQuantity replaces the quantity of the entry with the given id.
// Quantities below 1 are a deliberate no-op: this path never deletes an
// item, so an accidental decrement past zero cannot empty the cart.
// Returns true only when a quantity was actually replaced.
func (e *Engine) SetQuantity(ctx context.Context, id string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	e.mu.Lock()
	found := false
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Quantity = quantity
			found = true
			break
		}
	}
	e.mu.Unlock()

	if !found {
		return false
	}

	e.persist(ctx)
	e.notifyChanged()
	return true
}

// Clear empties the cart unconditionally
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	e.items = nil
	e.mu.Unlock()

	e.notifier.Notify("Cart cleared", notify.SeveritySuccess)
	e.persist(ctx)
	e.notifyChanged()
}

// Totals derives the cart totals from the current items. Nothing is
// cached; every call recomputes from scratch.
func (e *Engine) Totals() models.CartTotals {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var totals models.CartTotals
	for _, item := range e.items {
		totals.Count += item.Quantity
		totals.Subtotal += item.Price * float64(item.Quantity)
	}
	totals.ServiceFee = totals.Subtotal * serviceFeeRate
	totals.Total = totals.Subtotal + totals.ServiceFee
	return totals
}

// persist writes the full item collection to the durable store. The
// in-memory cart stays authoritative when the write fails.
func (e *Engine) persist(ctx context.Context) {
	e.mu.RLock()
	raw, err := json.Marshal(e.items)
	e.mu.RUnlock()
	if err != nil {
		utils.Warn("cart: failed to serialize cart", map[string]any{"key": e.storageKey, "error": err.Error()})
		return
	}

	if err := e.store.Set(ctx, e.storageKey, raw); err != nil {
		utils.Warn("cart: failed to persist cart", map[string]any{"key": e.storageKey, "error": err.Error()})
	}
}

func (e *Engine) notifyChanged() {
	e.mu.RLock()
	subscribers := make([]func(), len(e.subscribers))
	copy(subscribers, e.subscribers)
	e.mu.RUnlock()

	for _, fn := range subscribers {
		fn()
	}
}
