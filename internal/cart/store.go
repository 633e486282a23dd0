package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"storefront-be/internal/kvstore"
	"storefront-be/internal/notify"
)

// Store owns the cart state. Every mutation is written to the snapshot
// store before the call returns, so a restart observes the latest
// committed cart. Operations never fail for domain reasons; mutations
// on absent keys degrade to no-ops, so the only possible error is a
// persistence fault.
type Store struct {
	mu       sync.Mutex
	items    map[string]Line
	kv       kvstore.Store
	notifier notify.Notifier
	subs     []func(Snapshot)
}

// NewStore loads the persisted cart snapshot (if any) and returns a
// ready container.
func NewStore(ctx context.Context, kv kvstore.Store, notifier notify.Notifier) (*Store, error) {
	s := &Store{
		items:    make(map[string]Line),
		kv:       kv,
		notifier: notifier,
	}

	raw, ok, err := kv.Get(ctx, kvstore.CartStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	if ok {
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
		}
		for key, line := range snap.Items {
			line.ItemKey = key
			s.items[key] = line
		}
	}

	return s, nil
}

// Subscribe registers fn to run after every committed mutation with a
// copy of the new state. Subscribers must not mutate the snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// AddToCart creates a line with quantity 1, or increments the existing
// line for itemKey. Size and color describe the line only on first add;
// repeat adds keep the original attributes.
func (s *Store) AddToCart(ctx context.Context, itemKey, productID, size, color string) error {
	if size == "" {
		size = AttrNone
	}
	if color == "" {
		color = AttrNone
	}

	s.mu.Lock()
	prev, had := s.items[itemKey]
	if had {
		next := prev
		next.Quantity++
		s.items[itemKey] = next
	} else {
		s.items[itemKey] = Line{
			ItemKey:   itemKey,
			ProductID: productID,
			Quantity:  1,
			Size:      size,
			Color:     color,
		}
	}

	if err := s.commitLocked(ctx, itemKey, prev, had); err != nil {
		s.mu.Unlock()
		return err
	}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.SeveritySuccess, "Added to cart")
	publish(subs, snap)
	return nil
}

// UpdateQuantity adds delta to the line's quantity. A resulting
// quantity of zero or less removes the line. Absent keys are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, itemKey string, delta int) error {
	s.mu.Lock()
	prev, had := s.items[itemKey]
	if !had {
		s.mu.Unlock()
		return nil
	}

	next := prev
	next.Quantity += delta
	if next.Quantity <= 0 {
		delete(s.items, itemKey)
	} else {
		s.items[itemKey] = next
	}

	if err := s.commitLocked(ctx, itemKey, prev, had); err != nil {
		s.mu.Unlock()
		return err
	}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, snap)
	return nil
}

// UpdateSize replaces the line's size. Absent keys are a no-op.
func (s *Store) UpdateSize(ctx context.Context, itemKey, size string) error {
	s.mu.Lock()
	prev, had := s.items[itemKey]
	if !had {
		s.mu.Unlock()
		return nil
	}

	next := prev
	next.Size = size
	s.items[itemKey] = next

	if err := s.commitLocked(ctx, itemKey, prev, had); err != nil {
		s.mu.Unlock()
		return err
	}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, snap)
	return nil
}

// RemoveItem removes the line if present. Absent keys are a silent
// no-op with no acknowledgment.
func (s *Store) RemoveItem(ctx context.Context, itemKey string) error {
	s.mu.Lock()
	prev, had := s.items[itemKey]
	if !had {
		s.mu.Unlock()
		return nil
	}

	delete(s.items, itemKey)

	if err := s.commitLocked(ctx, itemKey, prev, had); err != nil {
		s.mu.Unlock()
		return err
	}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.SeveritySuccess, "Removed from cart")
	publish(subs, snap)
	return nil
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	old := s.items
	s.items = make(map[string]Line)

	if err := s.persistLocked(ctx); err != nil {
		s.items = old
		s.mu.Unlock()
		return err
	}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, snap)
	return nil
}

// GetItem is a pure lookup.
func (s *Store) GetItem(itemKey string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.items[itemKey]
	return line, ok
}

// ItemCount is the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.items {
		total += line.Quantity
	}
	return total
}

// ItemKeys returns all current keys, sorted so the order is stable
// within a single snapshot.
func (s *Store) ItemKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lines returns a copy of every cart line.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.items))
	for _, line := range s.items {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemKey < lines[j].ItemKey })
	return lines
}

// commitLocked persists the current state; on failure it restores the
// single entry the caller changed so memory and storage stay in step.
func (s *Store) commitLocked(ctx context.Context, itemKey string, prev Line, had bool) error {
	if err := s.persistLocked(ctx); err != nil {
		if had {
			s.items[itemKey] = prev
		} else {
			delete(s.items, itemKey)
		}
		return err
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(Snapshot{Items: s.items})
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, kvstore.CartStorageKey, raw); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *Store) snapshotLocked() (Snapshot, []func(Snapshot)) {
	items := make(map[string]Line, len(s.items))
	for key, line := range s.items {
		items[key] = line
	}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	return Snapshot{Items: items}, subs
}

func publish(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
