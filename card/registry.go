package card

import (
	"sync"
	"time"

	"github.com/fwojciec/refbot"
)

// Registry is the process-wide dispatcher from delivered-message IDs to
// live cards. A single registry consulted on every incoming navigation
// event replaces per-card event-listener registration and its cleanup
// ordering problems. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	cards map[string]*Card

	now func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithNow overrides the registry's clock. Used in tests to drive expiry
// without waiting.
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		cards: make(map[string]*Card),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds the card to its delivered message and starts tracking it.
// The card must have been sent already (msg is its delivery reference).
func (r *Registry) Register(c *Card, msg *refbot.Message) {
	c.Bind(msg, r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[msg.ID] = c
}

// Navigate dispatches one navigation event to the card owning the event's
// message. Events for unknown or expired messages, from non-owners, or
// with out-of-bounds targets are dropped: the returned ok is false and
// nothing changes. On success it returns the card and the page to display.
func (r *Registry) Navigate(ev refbot.NavigationEvent) (*Card, *refbot.Page, bool) {
	r.mu.Lock()
	c, found := r.cards[ev.MessageID]
	r.mu.Unlock()
	if !found {
		return nil, nil, false
	}

	page, moved := c.Navigate(ev.UserID, ev.Control, r.now())
	if !moved {
		return nil, nil, false
	}
	return c, page, true
}

// Lookup returns the card bound to the message ID, if tracked.
func (r *Registry) Lookup(messageID string) (*Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[messageID]
	return c, ok
}

// Remove stops tracking the card bound to the message ID, returning it if
// it was tracked. Used on explicit delete.
func (r *Registry) Remove(messageID string) (*Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[messageID]
	if ok {
		delete(r.cards, messageID)
	}
	return c, ok
}

// Sweep drops expired cards and returns how many were removed. Their
// messages stay delivered; only navigation dispatch stops. Run this
// periodically so the map does not grow with dead cards.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, c := range r.cards {
		if c.State(now) == StateExpired {
			delete(r.cards, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked cards.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cards)
}
