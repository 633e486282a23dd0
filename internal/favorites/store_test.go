package favorites

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-be/internal/catalog"
	"storefront-be/internal/kvstore"
	"storefront-be/internal/notify"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ notify.Severity, message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// MockCatalog is a mock implementation of the CatalogLookup interface
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ProductsByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

// fakeClock advances only when told, so debounce windows are exact.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *recordingNotifier, *fakeClock) {
	t.Helper()
	n := &recordingNotifier{}
	clock := newFakeClock()
	s, err := newStore(context.Background(), kvstore.NewMemory(), n, nil, clock.Now)
	require.NoError(t, err)
	return s, n, clock
}

func TestStore_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("AddThenRemove", func(t *testing.T) {
		s, _, _ := newTestStore(t)

		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		assert.True(t, s.IsFavorite("p1"))

		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		assert.False(t, s.IsFavorite("p1"))
		assert.Equal(t, 0, s.Count())
	})

	t.Run("OrderReflectsAddOrder", func(t *testing.T) {
		s, _, clock := newTestStore(t)

		require.NoError(t, s.Toggle(ctx, "p1", ""))
		require.NoError(t, s.Toggle(ctx, "p2", ""))
		require.NoError(t, s.Toggle(ctx, "p3", ""))
		// drop p2, re-add: it goes to the end
		require.NoError(t, s.Toggle(ctx, "p2", ""))
		clock.Advance(time.Second)
		require.NoError(t, s.Toggle(ctx, "p2", ""))

		assert.Equal(t, []string{"p1", "p3", "p2"}, s.IDs())
	})

	t.Run("NoNameNoToast", func(t *testing.T) {
		s, n, _ := newTestStore(t)

		require.NoError(t, s.Toggle(ctx, "p1", ""))

		assert.Empty(t, n.all())
	})
}

func TestStore_ToggleDebounce(t *testing.T) {
	ctx := context.Background()

	t.Run("RapidDoubleToggleNotifiesOnce", func(t *testing.T) {
		s, n, clock := newTestStore(t)

		// add: notifies and records the slot
		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		clock.Advance(50 * time.Millisecond)
		// remove: no notification
		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		clock.Advance(20 * time.Millisecond)
		// re-add inside the window: suppressed by the slot
		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))

		assert.Equal(t, []string{"Widget added to favorites!"}, n.all())
		assert.True(t, s.IsFavorite("p1"))
	})

	t.Run("SingleSlotNotPerID", func(t *testing.T) {
		s, n, clock := newTestStore(t)

		// Two different ids inside the same window both notify: the
		// slot only remembers the last notified id.
		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		clock.Advance(10 * time.Millisecond)
		require.NoError(t, s.Toggle(ctx, "p2", "Gadget"))

		assert.Equal(t, []string{
			"Widget added to favorites!",
			"Gadget added to favorites!",
		}, n.all())

		// The slot now holds p2, so p1 notifies again immediately.
		clock.Advance(10 * time.Millisecond)
		require.NoError(t, s.Toggle(ctx, "p1", "Widget")) // remove
		clock.Advance(10 * time.Millisecond)
		require.NoError(t, s.Toggle(ctx, "p1", "Widget")) // add again

		assert.Len(t, n.all(), 3)
	})

	t.Run("NotifiesAgainAfterWindow", func(t *testing.T) {
		s, n, clock := newTestStore(t)

		require.NoError(t, s.Toggle(ctx, "p1", "Widget"))
		clock.Advance(10 * time.Millisecond)
		require.NoError(t, s.Toggle(ctx, "p1", "Widget")) // remove
		clock.Advance(101 * time.Millisecond)
		require.NoError(t, s.Toggle(ctx, "p1", "Widget")) // add after window

		assert.Len(t, n.all(), 2)
	})
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent", func(t *testing.T) {
		s, n, _ := newTestStore(t)

		require.NoError(t, s.Add(ctx, "p1", "Widget"))
		require.NoError(t, s.Add(ctx, "p1", "Widget"))

		assert.Equal(t, []string{"p1"}, s.IDs())
		// at most one toast inside the window; the no-op add never
		// reaches the notifier at all
		assert.Len(t, n.all(), 1)
	})
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s, n, _ := newTestStore(t)

	require.NoError(t, s.Add(ctx, "p1", ""))
	require.NoError(t, s.Add(ctx, "p2", ""))

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "p1"))
		assert.Equal(t, []string{"p2"}, s.IDs())

		// absent id is a no-op
		require.NoError(t, s.Remove(ctx, "p1"))
		assert.Empty(t, n.all())
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		assert.Equal(t, 0, s.Count())
	})
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	n := &recordingNotifier{}

	first, err := NewStore(ctx, kv, n, nil)
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, "p2", ""))
	require.NoError(t, first.Add(ctx, "p1", ""))

	second, err := NewStore(ctx, kv, n, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"p2", "p1"}, second.IDs())
	assert.True(t, second.IsFavorite("p1"))
	assert.False(t, second.IsFavorite("p3"))
}

func TestStore_Products(t *testing.T) {
	ctx := context.Background()

	t.Run("DelegatesToCatalog", func(t *testing.T) {
		lookup := new(MockCatalog)
		s, err := NewStore(ctx, kvstore.NewMemory(), notify.Nop{}, lookup)
		require.NoError(t, err)
		require.NoError(t, s.Add(ctx, "p1", ""))
		require.NoError(t, s.Add(ctx, "p2", ""))

		lookup.On("ProductsByIDs", mock.Anything, []string{"p1", "p2"}).
			Return([]*catalog.Product{{ID: "p1"}, {ID: "p2"}}, nil).Once()

		products, err := s.Products(ctx)
		assert.NoError(t, err)
		assert.Len(t, products, 2)
		lookup.AssertExpectations(t)
	})

	t.Run("EmptySetSkipsLookup", func(t *testing.T) {
		lookup := new(MockCatalog)
		s, err := NewStore(ctx, kvstore.NewMemory(), notify.Nop{}, lookup)
		require.NoError(t, err)

		products, err := s.Products(ctx)
		assert.NoError(t, err)
		assert.Empty(t, products)
		lookup.AssertNotCalled(t, "ProductsByIDs")
	})
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	var got [][]string
	s.Subscribe(func(ids []string) { got = append(got, ids) })

	require.NoError(t, s.Add(ctx, "p1", ""))
	require.NoError(t, s.Add(ctx, "p1", "")) // no-op, no publish
	require.NoError(t, s.Remove(ctx, "p1"))

	require.Len(t, got, 2)
	assert.Equal(t, []string{"p1"}, got[0])
	assert.Empty(t, got[1])
}
