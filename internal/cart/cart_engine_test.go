package cart

import (
	"context"
	"errors"
	"testing"

	"marketgo/internal/models"
	"marketgo/internal/notify"
	"marketgo/internal/storage"

	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notices so tests can assert on outcomes
type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string, _ notify.Severity) {
	n.messages = append(n.messages, message)
}

// failingStore simulates persistence I/O failures
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("read failed")
}
func (failingStore) Set(context.Context, string, []byte) error { return errors.New("write failed") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("delete failed") }

func newTestItem(id string, price float64, quantity int) models.CartItem {
	return models.CartItem{
		ID:       id,
		Title:    "Item " + id,
		Price:    price,
		Seller:   "seller1",
		Quantity: quantity,
	}
}

func newTestEngine(t *testing.T) (*Engine, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewEngine(context.Background(), store, "cart:test", notify.NopNotifier{}), store
}

func TestEngine_AddItem_MergesByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	_, added := engine.AddItem(ctx, newTestItem("1", 100, 1))
	require.True(t, added)

	entry, added := engine.AddItem(ctx, newTestItem("1", 100, 2))
	require.False(t, added, "same id should update, not append")
	require.Equal(t, 3, entry.Quantity)

	items := engine.Items()
	require.Len(t, items, 1, "at most one entry per product id")
	require.Equal(t, 3, items[0].Quantity)

	totals := engine.Totals()
	require.Equal(t, 3, totals.Count)
	require.InDelta(t, 300.0, totals.Subtotal, 1e-9)
	require.InDelta(t, 15.0, totals.ServiceFee, 1e-9)
	require.InDelta(t, 315.0, totals.Total, 1e-9)
}

func TestEngine_AddItem_MergeKeepsExistingFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	first := newTestItem("1", 100, 1)
	engine.AddItem(ctx, first)

	// Same id with a different price: only quantity accumulates
	second := newTestItem("1", 999, 1)
	engine.AddItem(ctx, second)

	items := engine.Items()
	require.Len(t, items, 1)
	require.Equal(t, 100.0, items[0].Price)
	require.Equal(t, 2, items[0].Quantity)
}

func TestEngine_AddItem_ClampsNonPositiveQuantity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	entry, added := engine.AddItem(ctx, newTestItem("1", 10, 0))
	require.True(t, added)
	require.Equal(t, 1, entry.Quantity)

	entry, _ = engine.AddItem(ctx, newTestItem("2", 10, -5))
	require.Equal(t, 1, entry.Quantity)
}

func TestEngine_AddItem_Notices(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	notifier := &recordingNotifier{}
	engine := NewEngine(ctx, storage.NewMemoryStore(), "cart:test", notifier)

	engine.AddItem(ctx, newTestItem("1", 10, 1))
	engine.AddItem(ctx, newTestItem("1", 10, 1))

	require.Len(t, notifier.messages, 2)
	require.Contains(t, notifier.messages[0], "Added")
	require.Contains(t, notifier.messages[1], "Updated")
}

func TestEngine_RemoveItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	engine.AddItem(ctx, newTestItem("1", 10, 1))
	engine.AddItem(ctx, newTestItem("2", 20, 1))

	removed, found := engine.RemoveItem(ctx, "1")
	require.True(t, found)
	require.Equal(t, "1", removed.ID)
	require.Len(t, engine.Items(), 1)

	// Absent id is a no-op
	_, found = engine.RemoveItem(ctx, "nope")
	require.False(t, found)
	require.Len(t, engine.Items(), 1)
}

func TestEngine_SetQuantity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	engine.AddItem(ctx, newTestItem("1", 100, 3))

	tests := []struct {
		name         string
		quantity     int
		wantUpdated  bool
		wantQuantity int
	}{
		{name: "replace_exactly", quantity: 5, wantUpdated: true, wantQuantity: 5},
		{name: "back_to_one", quantity: 1, wantUpdated: true, wantQuantity: 1},
		{name: "zero_is_noop", quantity: 0, wantUpdated: false, wantQuantity: 1},
		{name: "negative_is_noop", quantity: -3, wantUpdated: false, wantQuantity: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			updated := engine.SetQuantity(ctx, "1", tc.quantity)
			require.Equal(t, tc.wantUpdated, updated)

			items := engine.Items()
			require.Len(t, items, 1, "quantity guard must never remove the item")
			require.Equal(t, tc.wantQuantity, items[0].Quantity)
		})
	}

	t.Run("absent_id_is_noop", func(t *testing.T) {
		require.False(t, engine.SetQuantity(ctx, "nope", 2))
	})
}

func TestEngine_SetQuantityGuard_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	engine.AddItem(ctx, newTestItem("1", 100, 1))
	engine.AddItem(ctx, newTestItem("1", 100, 2))

	require.False(t, engine.SetQuantity(ctx, "1", 0))

	items := engine.Items()
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func TestEngine_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	engine.AddItem(ctx, newTestItem("1", 10, 2))
	engine.AddItem(ctx, newTestItem("2", 20, 1))

	engine.Clear(ctx)

	require.Empty(t, engine.Items())
	totals := engine.Totals()
	require.Zero(t, totals.Count)
	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.Total)
}

func TestEngine_Totals_EmptyCart(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	totals := engine.Totals()
	require.Equal(t, models.CartTotals{}, totals)
}

func TestEngine_PersistenceRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	engine := NewEngine(ctx, store, "cart:roundtrip", notify.NopNotifier{})
	engine.AddItem(ctx, newTestItem("1", 100, 2))
	engine.AddItem(ctx, newTestItem("2", 50, 1))

	// A fresh engine over the same store and key sees the same cart
	rehydrated := NewEngine(ctx, store, "cart:roundtrip", notify.NopNotifier{})
	require.Equal(t, engine.Items(), rehydrated.Items())
	require.Equal(t, engine.Totals(), rehydrated.Totals())
}

func TestEngine_LoadCorruptedCartStartsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "cart:bad", []byte("{not json")))

	engine := NewEngine(ctx, store, "cart:bad", notify.NopNotifier{})
	require.Empty(t, engine.Items())
}

func TestEngine_LoadFailureStartsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	engine := NewEngine(ctx, failingStore{}, "cart:failing", notify.NopNotifier{})
	require.Empty(t, engine.Items())

	// In-memory state stays authoritative even though every save fails
	engine.AddItem(ctx, newTestItem("1", 10, 1))
	require.Len(t, engine.Items(), 1)
}

func TestEngine_SubscriberNotifiedOnMutations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	var calls int
	engine.Subscribe(func() { calls++ })

	engine.AddItem(ctx, newTestItem("1", 10, 1))
	engine.SetQuantity(ctx, "1", 4)
	engine.RemoveItem(ctx, "1")
	engine.Clear(ctx)

	require.Equal(t, 4, calls)

	// Guarded no-ops do not fire change notifications
	engine.SetQuantity(ctx, "1", 0)
	require.Equal(t, 4, calls)
}

func TestManager_IsolatesCartsPerUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	manager := NewManager(store, notify.NopNotifier{})

	alice := manager.Engine(ctx, "alice")
	bob := manager.Engine(ctx, "bob")

	alice.AddItem(ctx, newTestItem("1", 10, 1))

	require.Len(t, alice.Items(), 1)
	require.Empty(t, bob.Items())

	// Same user gets the same engine back
	require.Same(t, alice, manager.Engine(ctx, "alice"))
}
