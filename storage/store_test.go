package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/logger"
	"labstock/inventory"
)

type recordingNotifier struct {
	parts []string
}

func (n *recordingNotifier) LowStock(item inventory.Item) error {
	n.parts = append(n.parts, item.PartNum)
	return nil
}

func newTestStore(t *testing.T, backend *fakeBackend, mirror *fakeMirror) *Store {
	t.Helper()
	s := NewStore(backend, mirror, logger.Nop{})
	require.NoError(t, s.Refresh(context.Background()))
	return s
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("add writes backend, mirror and cache", func(t *testing.T) {
		backend := &fakeBackend{}
		mirror := &fakeMirror{}
		s := newTestStore(t, backend, mirror)

		require.NoError(t, s.Update(ctx, inventory.UpdateAdd, item("A", 4)))

		assert.Equal(t, []string{"append:A"}, backend.calls)
		assert.Equal(t, []string{"insert:A"}, mirror.calls)
		_, ok := s.Find("A")
		assert.True(t, ok)
	})

	t.Run("edit replaces the cached item", func(t *testing.T) {
		backend := &fakeBackend{items: []inventory.Item{item("A", 4)}}
		mirror := &fakeMirror{items: []inventory.Item{item("A", 4)}}
		s := newTestStore(t, backend, mirror)

		edited := item("A", 9)
		require.NoError(t, s.Update(ctx, inventory.UpdateEdit, edited))

		got, ok := s.Find("A")
		require.True(t, ok)
		assert.Equal(t, 9, got.StockB750)
	})

	t.Run("remove drops the item everywhere", func(t *testing.T) {
		backend := &fakeBackend{items: []inventory.Item{item("A", 4)}}
		mirror := &fakeMirror{items: []inventory.Item{item("A", 4)}}
		s := newTestStore(t, backend, mirror)

		require.NoError(t, s.Update(ctx, inventory.UpdateRemove, item("A", 4)))

		_, ok := s.Find("A")
		assert.False(t, ok)
		assert.Empty(t, backend.items)
		assert.Empty(t, mirror.items)
	})

	t.Run("backend failure leaves mirror and cache untouched", func(t *testing.T) {
		backend := &fakeBackend{failAppend: true}
		mirror := &fakeMirror{}
		s := newTestStore(t, backend, mirror)

		err := s.Update(ctx, inventory.UpdateAdd, item("A", 4))
		assert.Error(t, err)
		assert.Empty(t, mirror.calls)
		_, ok := s.Find("A")
		assert.False(t, ok)
	})

	t.Run("low stock add triggers notification", func(t *testing.T) {
		backend := &fakeBackend{}
		mirror := &fakeMirror{}
		s := newTestStore(t, backend, mirror)
		notifier := &recordingNotifier{}
		s.SetNotifier(notifier)

		out := item("EMPTY", 0) // total 0 -> Out Of Stock
		require.NoError(t, s.Update(ctx, inventory.UpdateAdd, out))

		assert.Equal(t, []string{"EMPTY"}, backend.notifications)
		assert.Equal(t, []string{"EMPTY"}, notifier.parts)
	})
}

func TestStoreUsers(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{users: []string{"ada"}}
	mirror := &fakeMirror{users: []string{"ada"}}
	s := newTestStore(t, backend, mirror)

	assert.True(t, s.HasUser("ada"))
	assert.False(t, s.HasUser("grace"))

	require.NoError(t, s.AddUser(ctx, "grace"))
	assert.True(t, s.HasUser("grace"))
	assert.ElementsMatch(t, []string{"ada", "grace"}, backend.users)

	assert.Error(t, s.AddUser(ctx, "grace"), "duplicate user")
	assert.Error(t, s.AddUser(ctx, ""), "empty user")

	require.NoError(t, s.RemoveUser(ctx, "ada"))
	assert.False(t, s.HasUser("ada"))
	assert.Error(t, s.RemoveUser(ctx, "ada"), "already removed")
}

func TestStoreCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("subtracts from B750 first then B757", func(t *testing.T) {
		it := inventory.Item{PartNum: "A", StockB750: 1, StockB757: 1, Minimum: 0}
		it.Recompute()
		backend := &fakeBackend{items: []inventory.Item{it}, users: []string{"ada"}}
		mirror := &fakeMirror{}
		s := newTestStore(t, backend, mirror)

		rec, err := s.Checkout(ctx, "ada", []string{"A", "A"})
		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "ada", rec.User)

		got, ok := s.Find("A")
		require.True(t, ok)
		assert.Zero(t, got.StockB750)
		assert.Zero(t, got.StockB757)
		assert.Equal(t, inventory.StatusOutOfStock, got.Status)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		s := newTestStore(t, &fakeBackend{}, &fakeMirror{})
		_, err := s.Checkout(ctx, "nobody", []string{"A"})
		assert.Error(t, err)
	})

	t.Run("empty item list is rejected", func(t *testing.T) {
		backend := &fakeBackend{users: []string{"ada"}}
		s := newTestStore(t, backend, &fakeMirror{})
		_, err := s.Checkout(ctx, "ada", nil)
		assert.Error(t, err)
	})

	t.Run("insufficient stock fails before anything is written", func(t *testing.T) {
		a := inventory.Item{PartNum: "A", StockB750: 2}
		a.Recompute()
		b := inventory.Item{PartNum: "B", StockB750: 1}
		b.Recompute()
		backend := &fakeBackend{items: []inventory.Item{a, b}, users: []string{"ada"}}
		s := newTestStore(t, backend, &fakeMirror{})

		// the second B exhausts its stock, so the whole checkout must fail
		_, err := s.Checkout(ctx, "ada", []string{"A", "B", "B"})
		require.Error(t, err)

		assert.Empty(t, backend.calls, "no writes before validation passes")
		got, ok := s.Find("A")
		require.True(t, ok)
		assert.Equal(t, 2, got.StockB750, "cached stock untouched")
	})

	t.Run("duplicate parts decrement cumulatively", func(t *testing.T) {
		it := inventory.Item{PartNum: "A", StockB750: 1, StockB757: 2}
		it.Recompute()
		backend := &fakeBackend{items: []inventory.Item{it}, users: []string{"ada"}}
		s := newTestStore(t, backend, &fakeMirror{})

		_, err := s.Checkout(ctx, "ada", []string{"A", "A", "A"})
		require.NoError(t, err)

		got, ok := s.Find("A")
		require.True(t, ok)
		assert.Zero(t, got.StockB750)
		assert.Zero(t, got.StockB757)
		// one write per distinct part
		assert.Equal(t, []string{"update:A"}, backend.calls)
	})

	t.Run("out of stock item fails the checkout", func(t *testing.T) {
		it := inventory.Item{PartNum: "A"}
		it.Recompute()
		backend := &fakeBackend{items: []inventory.Item{it}, users: []string{"ada"}}
		s := newTestStore(t, backend, &fakeMirror{})

		_, err := s.Checkout(ctx, "ada", []string{"A"})
		assert.Error(t, err)
	})
}
