// Package card implements paginated, navigable message cards.
//
// A Card owns an ordered set of pages, a cursor, and an owning user. It
// accepts navigation events only from its owner, only while active, and
// only when the target page is in bounds; everything else is a silent
// no-op, so spurious double-clicks and non-owner reactions never disturb
// state. Cards expire a fixed interval after send (the interval does not
// reset on use); expired cards freeze their content but are not deleted.
package card

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/refbot"
	"github.com/google/uuid"
)

// State is the lifecycle state of a card.
type State int

// Card lifecycle states.
const (
	StateActive  State = iota // accepting navigation
	StateExpired              // navigation ignored, content frozen
)

// Card is one paginated message instance.
type Card struct {
	mu sync.Mutex

	id      string
	ownerID string
	pages   []*refbot.Page
	pos     int
	mode    refbot.ControlMode
	expiry  time.Duration

	msg    *refbot.Message
	sentAt time.Time
	state  State
}

// New creates a card for the given owner over one or more pages.
// Expiry <= 0 falls back to refbot.DefaultCardExpiry.
func New(ownerID string, pages []*refbot.Page, mode refbot.ControlMode, expiry time.Duration) (*Card, error) {
	if len(pages) == 0 {
		return nil, refbot.Errorf(refbot.EINVALID, "card requires at least one page")
	}
	if expiry <= 0 {
		expiry = refbot.DefaultCardExpiry
	}
	return &Card{
		id:      uuid.New().String(),
		ownerID: ownerID,
		pages:   pages,
		mode:    mode,
		expiry:  expiry,
	}, nil
}

// ID returns the card's internal identifier.
func (c *Card) ID() string { return c.id }

// Owner returns the owning user ID. Only the owner may navigate.
func (c *Card) Owner() string { return c.ownerID }

// Pages returns the page count.
func (c *Card) Pages() int { return len(c.pages) }

// Current returns the page at the cursor.
func (c *Card) Current() *refbot.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages[c.pos]
}

// CurrentIndex returns the zero-based cursor position.
func (c *Card) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Controls lists the navigation controls a transport should register for
// this card. Single-page cards need none.
func (c *Card) Controls() []string {
	if len(c.pages) < 2 {
		return nil
	}
	if c.mode == refbot.ControlPerPage {
		controls := make([]string, len(c.pages))
		for i := range c.pages {
			controls[i] = strconv.Itoa(i + 1)
		}
		return controls
	}
	return []string{refbot.ControlPrev, refbot.ControlNext}
}

// Bind attaches the delivered message and starts the expiry clock.
func (c *Card) Bind(msg *refbot.Message, sentAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msg = msg
	c.sentAt = sentAt
}

// Message returns the delivered message reference, nil before Bind.
func (c *Card) Message() *refbot.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msg
}

// State reports the card's lifecycle state as of now, flipping to expired
// when the fixed interval since send has elapsed.
func (c *Card) State(now time.Time) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshState(now)
	return c.state
}

// Navigate applies one navigation event. It returns the page to display
// and true when the cursor moved; every rejected event (wrong user, out of
// bounds, expired card, unknown control) returns false with no state
// change.
func (c *Card) Navigate(userID, control string, now time.Time) (*refbot.Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshState(now)
	if c.state != StateActive || userID != c.ownerID {
		return nil, false
	}

	target, ok := c.target(control)
	if !ok || target == c.pos || target < 0 || target >= len(c.pages) {
		return nil, false
	}

	c.pos = target
	return c.pages[c.pos], true
}

// target maps a control name onto a page index.
func (c *Card) target(control string) (int, bool) {
	switch control {
	case refbot.ControlPrev:
		return c.pos - 1, true
	case refbot.ControlNext:
		return c.pos + 1, true
	}
	if c.mode == refbot.ControlPerPage {
		if n, err := strconv.Atoi(control); err == nil {
			return n - 1, true
		}
	}
	return 0, false
}

// refreshState flips Active to Expired once the interval has elapsed.
// Caller must hold c.mu.
func (c *Card) refreshState(now time.Time) {
	if c.state == StateActive && !c.sentAt.IsZero() && now.Sub(c.sentAt) >= c.expiry {
		c.state = StateExpired
	}
}

// PageFooter renders the position footer for a page.
func PageFooter(index, total int) string {
	return fmt.Sprintf("Page %d / %d", index+1, total)
}

// PagesFromModel splits a display model into pages of at most pageSize
// characters of body text. Labeled fields appear on the first page; later
// pages carry the overflowing body. Every page shares the model's title,
// link, attribution, and color and gets a "Page N / total" footer.
func PagesFromModel(dm *refbot.DisplayModel, pageSize int) []*refbot.Page {
	bodies := refbot.SplitPages(dm.Description, pageSize)

	pages := make([]*refbot.Page, 0, len(bodies))
	for i, body := range bodies {
		page := &refbot.Page{
			Title:       dm.Title,
			Body:        body,
			Footer:      PageFooter(i, len(bodies)),
			Link:        dm.Link,
			Attribution: dm.Footer,
			Color:       dm.Color,
		}
		if i == 0 {
			page.Fields = dm.Fields
		}
		pages = append(pages, page)
	}
	return pages
}
