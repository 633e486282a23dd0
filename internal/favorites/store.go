package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront-be/internal/catalog"
	"storefront-be/internal/kvstore"
	"storefront-be/internal/notify"
)

// debounceWindow suppresses a duplicate "added to favorites" toast when
// two UI elements wired to the same handler fire in the same tick.
const debounceWindow = 100 * time.Millisecond

// CatalogLookup resolves product records behind the stored ids. The
// container owns only identifiers, never product payloads.
type CatalogLookup interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]*catalog.Product, error)
}

// Store owns the favorites list: product ids in add order, no
// duplicates. Every mutation is persisted before the call returns.
//
// The toast debounce is deliberately single-slot, not a per-id window:
// only the most recently notified id is tracked, so rapid toggles on
// two different ids both notify even inside the window.
type Store struct {
	mu       sync.Mutex
	ids      []string
	kv       kvstore.Store
	notifier notify.Notifier
	catalog  CatalogLookup
	now      func() time.Time

	lastNotifiedID string
	lastNotifiedAt time.Time

	subs []func([]string)
}

func NewStore(ctx context.Context, kv kvstore.Store, notifier notify.Notifier, lookup CatalogLookup) (*Store, error) {
	return newStore(ctx, kv, notifier, lookup, time.Now)
}

func newStore(ctx context.Context, kv kvstore.Store, notifier notify.Notifier, lookup CatalogLookup, now func() time.Time) (*Store, error) {
	s := &Store{
		kv:       kv,
		notifier: notifier,
		catalog:  lookup,
		now:      now,
	}

	raw, ok, err := kv.Get(ctx, kvstore.FavoritesStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites snapshot: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &s.ids); err != nil {
			return nil, fmt.Errorf("failed to decode favorites snapshot: %w", err)
		}
	}

	return s, nil
}

// Subscribe registers fn to run after every committed mutation with a
// copy of the id list.
func (s *Store) Subscribe(fn func([]string)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Toggle removes the id when present, appends it otherwise. Adding
// notifies (subject to the debounce) when productName is given.
func (s *Store) Toggle(ctx context.Context, productID, productName string) error {
	s.mu.Lock()
	idx := s.indexLocked(productID)
	added := idx < 0
	prev := s.ids
	if added {
		s.ids = append(append([]string(nil), s.ids...), productID)
	} else {
		s.ids = append(append([]string(nil), s.ids[:idx]...), s.ids[idx+1:]...)
	}

	if err := s.persistLocked(ctx); err != nil {
		s.ids = prev
		s.mu.Unlock()
		return err
	}

	var toast string
	if added && productName != "" && s.shouldNotifyLocked(productID) {
		toast = productName + " added to favorites!"
	}
	ids, subs := s.snapshotLocked()
	s.mu.Unlock()

	if toast != "" {
		s.notifier.Notify(notify.SeveritySuccess, toast)
	}
	publish(subs, ids)
	return nil
}

// Add appends the id if absent; already-favorited ids are a no-op.
func (s *Store) Add(ctx context.Context, productID, productName string) error {
	s.mu.Lock()
	if s.indexLocked(productID) >= 0 {
		s.mu.Unlock()
		return nil
	}

	prev := s.ids
	s.ids = append(append([]string(nil), s.ids...), productID)

	if err := s.persistLocked(ctx); err != nil {
		s.ids = prev
		s.mu.Unlock()
		return err
	}

	var toast string
	if productName != "" && s.shouldNotifyLocked(productID) {
		toast = productName + " added to favorites!"
	}
	ids, subs := s.snapshotLocked()
	s.mu.Unlock()

	if toast != "" {
		s.notifier.Notify(notify.SeveritySuccess, toast)
	}
	publish(subs, ids)
	return nil
}

// Remove deletes the id if present; no notification either way.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	idx := s.indexLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	prev := s.ids
	s.ids = append(append([]string(nil), s.ids[:idx]...), s.ids[idx+1:]...)

	if err := s.persistLocked(ctx); err != nil {
		s.ids = prev
		s.mu.Unlock()
		return err
	}
	ids, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, ids)
	return nil
}

// Clear empties the set.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	prev := s.ids
	s.ids = nil

	if err := s.persistLocked(ctx); err != nil {
		s.ids = prev
		s.mu.Unlock()
		return err
	}
	ids, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(subs, ids)
	return nil
}

// IsFavorite is a pure membership test.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(productID) >= 0
}

// IDs returns the favorited product ids in add order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Products resolves the favorited ids through the catalog. It reads the
// id list once and then runs without the container lock, so it never
// blocks mutations; the result may trail a concurrent mutation.
func (s *Store) Products(ctx context.Context) ([]*catalog.Product, error) {
	ids := s.IDs()
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	return s.catalog.ProductsByIDs(ctx, ids)
}

// shouldNotifyLocked applies the single-slot debounce and records the
// slot when the notification is allowed.
func (s *Store) shouldNotifyLocked(productID string) bool {
	now := s.now()
	if s.lastNotifiedID == productID && !s.lastNotifiedAt.IsZero() && now.Sub(s.lastNotifiedAt) <= debounceWindow {
		return false
	}
	s.lastNotifiedID = productID
	s.lastNotifiedAt = now
	return true
}

func (s *Store) indexLocked(productID string) int {
	for i, id := range s.ids {
		if id == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) error {
	ids := s.ids
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, kvstore.FavoritesStorageKey, raw); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

func (s *Store) snapshotLocked() ([]string, []func([]string)) {
	ids := append([]string(nil), s.ids...)
	subs := make([]func([]string), len(s.subs))
	copy(subs, s.subs)
	return ids, subs
}

func publish(subs []func([]string), ids []string) {
	for _, fn := range subs {
		fn(ids)
	}
}
