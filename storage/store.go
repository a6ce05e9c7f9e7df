package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"labstock/internal/logger"
	"labstock/inventory"
)

// Notifier is told when an item drops below its stock minimums.
type Notifier interface {
	LowStock(item inventory.Item) error
}

// CheckoutRecord describes one completed scanner checkout.
type CheckoutRecord struct {
	ID    string
	User  string
	Parts []string
	At    time.Time
}

// Store is the application-facing inventory API. It keeps an in-memory
// cache of items and users and applies every change to both the
// backend and the mirror.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	mirror  MirrorStore
	items   []inventory.Item
	users   map[string]struct{}

	notifier Notifier
	log      logger.Logger
}

func NewStore(backend Backend, mirror MirrorStore, log logger.Logger) *Store {
	return &Store{
		backend: backend,
		mirror:  mirror,
		users:   make(map[string]struct{}),
		log:     log,
	}
}

// SetNotifier installs the low-stock notifier. Optional.
func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Refresh reloads the item and user caches from the backend.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.backend.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh items: %w", err)
	}
	users, err := s.backend.Users(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.users = make(map[string]struct{}, len(users))
	for _, u := range users {
		s.users[u] = struct{}{}
	}
	return nil
}

// Items returns a copy of the cached items.
func (s *Store) Items() []inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]inventory.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Users returns the cached usernames.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.users))
	for u := range s.users {
		out = append(out, u)
	}
	return out
}

// HasUser reports whether the username is known.
func (s *Store) HasUser(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok
}

// Find returns the cached item with the given part number.
func (s *Store) Find(partNum string) (inventory.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.PartNum == partNum {
			return it, true
		}
	}
	return inventory.Item{}, false
}

// Update applies the change to the backend, the mirror, and the cache,
// in that order. The backend write happens first because it is the
// system of record.
func (s *Store) Update(ctx context.Context, t inventory.UpdateType, items ...inventory.Item) error {
	for _, item := range items {
		var backendErr, mirrorErr error

		switch t {
		case inventory.UpdateAdd:
			backendErr = s.backend.AppendItem(ctx, item)
			if backendErr == nil {
				mirrorErr = s.mirror.InsertItem(item)
			}
		case inventory.UpdateEdit:
			backendErr = s.backend.UpdateItem(ctx, item)
			if backendErr == nil {
				mirrorErr = s.mirror.UpdateItem(item)
			}
		case inventory.UpdateRemove:
			backendErr = s.backend.DeleteItem(ctx, item.PartNum)
			if backendErr == nil {
				mirrorErr = s.mirror.DeleteItem(item.PartNum)
			}
		default:
			return fmt.Errorf("unknown update type %v", t)
		}

		if backendErr != nil {
			return fmt.Errorf("%s of %s failed on backend: %w", t, item.PartNum, backendErr)
		}
		if mirrorErr != nil {
			// The sheet already changed; the next sync repairs the mirror.
			s.log.Warning("Store", "mirror write failed, mirror is stale until next sync",
				map[string]interface{}{"part": item.PartNum, "error": mirrorErr.Error()})
		}

		s.applyToCache(t, item)
		s.log.Info("Store", "item "+t.String(), map[string]interface{}{"part": item.PartNum})

		if t != inventory.UpdateRemove {
			s.maybeNotify(ctx, item)
		}
	}
	return nil
}

func (s *Store) applyToCache(t inventory.UpdateType, item inventory.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t {
	case inventory.UpdateAdd:
		s.items = append(s.items, item)
	case inventory.UpdateEdit:
		for i := range s.items {
			if s.items[i].PartNum == item.PartNum {
				s.items[i] = item
				return
			}
		}
		s.items = append(s.items, item)
	case inventory.UpdateRemove:
		for i := range s.items {
			if s.items[i].PartNum == item.PartNum {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) maybeNotify(ctx context.Context, item inventory.Item) {
	if item.Status == inventory.StatusInStock {
		return
	}

	if err := s.backend.AppendNotification(ctx, item.PartNum); err != nil {
		s.log.Warning("Store", "failed to record notification",
			map[string]interface{}{"part": item.PartNum, "error": err.Error()})
	}

	s.mu.RLock()
	notifier := s.notifier
	s.mu.RUnlock()
	if notifier == nil {
		return
	}
	if err := notifier.LowStock(item); err != nil {
		s.log.Warning("Store", "failed to send low stock notification",
			map[string]interface{}{"part": item.PartNum, "error": err.Error()})
	}
}

// AddUser appends the username to the backend and the mirror.
func (s *Store) AddUser(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}
	if s.HasUser(username) {
		return fmt.Errorf("user %s already exists", username)
	}
	if err := s.backend.AppendUser(ctx, username); err != nil {
		return err
	}
	if err := s.mirror.InsertUser(username); err != nil {
		s.log.Warning("Store", "mirror write failed, mirror is stale until next sync",
			map[string]interface{}{"user": username, "error": err.Error()})
	}

	s.mu.Lock()
	s.users[username] = struct{}{}
	s.mu.Unlock()
	return nil
}

// RemoveUser deletes the username from the backend and the mirror.
func (s *Store) RemoveUser(ctx context.Context, username string) error {
	if !s.HasUser(username) {
		return fmt.Errorf("user %s not found", username)
	}
	if err := s.backend.DeleteUser(ctx, username); err != nil {
		return err
	}
	if err := s.mirror.DeleteUser(username); err != nil {
		s.log.Warning("Store", "mirror write failed, mirror is stale until next sync",
			map[string]interface{}{"user": username, "error": err.Error()})
	}

	s.mu.Lock()
	delete(s.users, username)
	s.mu.Unlock()
	return nil
}

// Checkout subtracts one unit of each part for the given user. Stock is
// taken from B750 first, then B757. Every decrement is validated before
// the first write, so a checkout that cannot be satisfied changes
// nothing. Touched items are written through Update, so derived fields
// and notifications follow.
func (s *Store) Checkout(ctx context.Context, user string, partNums []string) (CheckoutRecord, error) {
	if !s.HasUser(user) {
		return CheckoutRecord{}, fmt.Errorf("unknown user %q", user)
	}
	if len(partNums) == 0 {
		return CheckoutRecord{}, fmt.Errorf("no items to check out")
	}

	updated := make(map[string]inventory.Item, len(partNums))
	var order []string
	for _, part := range partNums {
		item, ok := updated[part]
		if !ok {
			if item, ok = s.Find(part); !ok {
				return CheckoutRecord{}, fmt.Errorf("item %s not found", part)
			}
			order = append(order, part)
		}

		switch {
		case item.StockB750 > 0:
			item.StockB750--
		case item.StockB757 > 0:
			item.StockB757--
		default:
			return CheckoutRecord{}, fmt.Errorf("item %s is out of stock", part)
		}
		item.Recompute()
		updated[part] = item
	}

	for _, part := range order {
		if err := s.Update(ctx, inventory.UpdateEdit, updated[part]); err != nil {
			return CheckoutRecord{}, err
		}
	}

	rec := CheckoutRecord{
		ID:    uuid.NewString(),
		User:  user,
		Parts: partNums,
		At:    time.Now(),
	}
	s.log.Info("Store", "checkout complete", map[string]interface{}{
		"checkout_id": rec.ID,
		"user":        rec.User,
		"items":       len(rec.Parts),
	})
	return rec, nil
}
