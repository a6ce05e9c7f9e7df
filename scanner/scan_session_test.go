package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticLookup struct {
	users map[string]bool
	items map[string]bool
}

func (l staticLookup) IsUser(v string) bool { return l.users[v] }
func (l staticLookup) IsItem(v string) bool { return l.items[v] }

func testLookup() staticLookup {
	return staticLookup{
		users: map[string]bool{"ada": true, "grace": true},
		items: map[string]bool{"CAP-0042": true, "RES-0007": true},
	}
}

func TestSessionObserve(t *testing.T) {
	s := NewSession(testLookup())

	assert.Equal(t, EventUser, s.Observe("ada").Kind)
	assert.Equal(t, "ada", s.User())

	assert.Equal(t, EventItem, s.Observe("CAP-0042").Kind)
	assert.Equal(t, EventItem, s.Observe("RES-0007").Kind)
	assert.Equal(t, []string{"CAP-0042", "RES-0007"}, s.Parts())

	t.Run("repeated scans are ignored", func(t *testing.T) {
		assert.Equal(t, EventIgnored, s.Observe("CAP-0042").Kind)
		assert.Equal(t, EventIgnored, s.Observe("ada").Kind)
		assert.Len(t, s.Parts(), 2)
	})

	t.Run("unknown payloads are reported", func(t *testing.T) {
		assert.Equal(t, EventUnknown, s.Observe("garbage").Kind)
		assert.Len(t, s.Parts(), 2)
	})

	t.Run("a second user replaces the first", func(t *testing.T) {
		assert.Equal(t, EventUser, s.Observe("grace").Kind)
		assert.Equal(t, "grace", s.User())
	})
}

func TestSessionReady(t *testing.T) {
	s := NewSession(testLookup())
	assert.False(t, s.Ready())

	s.Observe("CAP-0042")
	assert.False(t, s.Ready(), "items without a user are not enough")

	s.Observe("ada")
	assert.True(t, s.Ready())
}

func TestSessionClear(t *testing.T) {
	s := NewSession(testLookup())
	s.Observe("ada")
	s.Observe("CAP-0042")

	s.Clear()

	assert.Empty(t, s.User())
	assert.Empty(t, s.Parts())
	assert.False(t, s.Ready())
	// cleared payloads can be scanned again
	assert.Equal(t, EventItem, s.Observe("CAP-0042").Kind)
}
