package refbot

import (
	"context"
	"time"
)

// DefaultCardExpiry is how long a card accepts navigation, measured from
// send time. The interval is fixed, not sliding: navigating does not reset
// it.
const DefaultCardExpiry = 5 * time.Minute

// Navigation control identifiers. Transports map these onto whatever their
// platform offers (reactions, buttons, key presses).
const (
	ControlPrev = "prev"
	ControlNext = "next"
)

// ControlMode selects how a card exposes navigation.
type ControlMode int

// Navigation control modes.
const (
	// ControlPrevNext exposes two controls stepping one page at a time.
	// Suited to long content with many pages.
	ControlPrevNext ControlMode = iota

	// ControlPerPage exposes one jump control per page. Suited to cards
	// with a small page count.
	ControlPerPage
)

// Page is one renderable page of a card.
type Page struct {
	Title       string
	Body        string
	Fields      []DisplayField
	Footer      string // "Page N / total"
	Link        string
	Attribution string
	Color       int
}

// Message references a delivered chat message.
type Message struct {
	ID        string
	ChannelID string
}

// NavigationEvent is one incoming interaction with a delivered card.
type NavigationEvent struct {
	// MessageID identifies the card by its delivered message.
	MessageID string

	// UserID is the interacting user. Only the card's owner may navigate.
	UserID string

	// Control names the activated control: ControlPrev, ControlNext, or a
	// 1-based page number in ControlPerPage mode.
	Control string
}

// Transport delivers and updates rendered content on the chat platform.
// The platform client itself is outside this module; implementations here
// are test doubles and the terminal preview.
type Transport interface {
	// Send delivers a new message showing page, registering the given
	// navigation controls on it.
	Send(ctx context.Context, channelID string, page *Page, controls []string) (*Message, error)

	// Edit replaces the content of an already delivered message.
	Edit(ctx context.Context, msg *Message, page *Page) error

	// Delete removes a delivered message.
	Delete(ctx context.Context, msg *Message) error
}
