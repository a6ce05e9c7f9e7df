package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/logger"
	"labstock/inventory"
)

func item(part string, b750 int) inventory.Item {
	it := inventory.Item{PartNum: part, StockB750: b750, Minimum: 1}
	it.Recompute()
	return it
}

func TestSyncMirror(t *testing.T) {
	t.Run("empty mirror receives everything", func(t *testing.T) {
		backend := &fakeBackend{
			items: []inventory.Item{item("A", 3), item("B", 0)},
			users: []string{"ada", "grace"},
		}
		mirror := &fakeMirror{}

		require.NoError(t, SyncMirror(context.Background(), backend, mirror, logger.Nop{}))

		assert.Equal(t, backend.items, mirror.items)
		assert.ElementsMatch(t, backend.users, mirror.users)
	})

	t.Run("differing items are updated", func(t *testing.T) {
		backend := &fakeBackend{items: []inventory.Item{item("A", 5)}}
		mirror := &fakeMirror{items: []inventory.Item{item("A", 2)}}

		require.NoError(t, SyncMirror(context.Background(), backend, mirror, logger.Nop{}))

		assert.Equal(t, []string{"update:A"}, mirror.calls)
		assert.Equal(t, 5, mirror.items[0].StockB750)
	})

	t.Run("identical items are untouched", func(t *testing.T) {
		backend := &fakeBackend{items: []inventory.Item{item("A", 5)}}
		mirror := &fakeMirror{items: []inventory.Item{item("A", 5)}}

		require.NoError(t, SyncMirror(context.Background(), backend, mirror, logger.Nop{}))

		assert.Empty(t, mirror.calls)
	})

	t.Run("mirror rows absent from backend are deleted", func(t *testing.T) {
		backend := &fakeBackend{items: []inventory.Item{item("A", 1)}}
		mirror := &fakeMirror{
			items: []inventory.Item{item("A", 1), item("STALE", 9)},
			users: []string{"gone"},
		}

		require.NoError(t, SyncMirror(context.Background(), backend, mirror, logger.Nop{}))

		assert.Equal(t, []string{"delete:STALE"}, mirror.calls)
		assert.Len(t, mirror.items, 1)
		assert.Empty(t, mirror.users)
	})

	t.Run("mixed add update remove", func(t *testing.T) {
		backend := &fakeBackend{
			items: []inventory.Item{item("KEEP", 1), item("CHANGED", 7), item("NEW", 2)},
			users: []string{"ada"},
		}
		mirror := &fakeMirror{
			items: []inventory.Item{item("KEEP", 1), item("CHANGED", 3), item("OLD", 4)},
			users: []string{"ada", "gone"},
		}

		require.NoError(t, SyncMirror(context.Background(), backend, mirror, logger.Nop{}))

		got, err := mirror.Items()
		require.NoError(t, err)
		parts := make([]string, len(got))
		for i, it := range got {
			parts[i] = it.PartNum
		}
		assert.ElementsMatch(t, []string{"KEEP", "CHANGED", "NEW"}, parts)
		assert.Equal(t, []string{"ada"}, mirror.users)
	})
}
