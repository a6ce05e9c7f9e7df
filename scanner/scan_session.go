package scanner

import (
	"sync"
)

// Lookup classifies a decoded QR payload.
type Lookup interface {
	IsUser(value string) bool
	IsItem(value string) bool
}

// EventKind is what a decoded payload turned out to be.
type EventKind int

const (
	EventIgnored EventKind = iota // already scanned this session
	EventUser
	EventItem
	EventUnknown
)

// Event is the session's interpretation of one decoded payload.
type Event struct {
	Kind  EventKind
	Value string
}

// Session accumulates one checkout: the scanned user plus the scanned
// items, deduplicated. A later user scan replaces the session user.
type Session struct {
	mu     sync.Mutex
	lookup Lookup
	user   string
	parts  []string
	seen   map[string]struct{}
}

func NewSession(lookup Lookup) *Session {
	return &Session{
		lookup: lookup,
		seen:   make(map[string]struct{}),
	}
}

// Observe classifies a decoded payload and folds it into the session.
func (s *Session) Observe(value string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == s.user {
		return Event{Kind: EventIgnored, Value: value}
	}
	if _, ok := s.seen[value]; ok {
		return Event{Kind: EventIgnored, Value: value}
	}

	if s.lookup.IsUser(value) {
		s.user = value
		return Event{Kind: EventUser, Value: value}
	}

	if s.lookup.IsItem(value) {
		s.seen[value] = struct{}{}
		s.parts = append(s.parts, value)
		return Event{Kind: EventItem, Value: value}
	}

	return Event{Kind: EventUnknown, Value: value}
}

// User returns the session user, or "" when no user has been scanned.
func (s *Session) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Parts returns the scanned part numbers in scan order.
func (s *Session) Parts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.parts))
	copy(out, s.parts)
	return out
}

// Ready reports whether the session has a user and at least one item.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != "" && len(s.parts) > 0
}

// Clear resets the session for the next checkout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = ""
	s.parts = nil
	s.seen = make(map[string]struct{})
}
