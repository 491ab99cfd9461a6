// Package bot wires the lookup pipeline to a chat transport: it resolves
// queries against corpora, renders matches, and manages navigable cards.
// It is the only package that talks to the transport boundary.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/card"
)

// User-facing replies for expected failure conditions. These are replies,
// not errors: resolution failures never cross the transport boundary as
// errors.
const (
	ReplyNotFound    = "Sorry, not found."
	ReplyUnavailable = "No reference data is loaded for this corpus. Please ask an administrator to regenerate it."
)

// CorpusCppSymbols is the corpus whose queries get the std:: prefix
// prepended when missing, matching how the reference data stores aliases.
const CorpusCppSymbols = "cpp-symbols"

// Handler is the command surface. It accepts lookup requests and
// navigation events and drives the transport.
type Handler struct {
	Corpora   refbot.CorpusService
	Matcher   refbot.Matcher
	Transport refbot.Transport
	Cards     *card.Registry
	Logger    *slog.Logger

	// PageSize and Expiry fall back to the package defaults when zero.
	PageSize    int
	Expiry      time.Duration
	ControlMode refbot.ControlMode
}

// Lookup resolves a query against a corpus and delivers the result as a
// navigable card owned by the invoker. Resolution failures produce
// user-visible notices instead of errors; only transport failures are
// returned.
func (h *Handler) Lookup(ctx context.Context, invokerID, channelID, corpusID, query string) error {
	query = NormalizeQuery(corpusID, query)

	corpus, err := h.Corpora.Corpus(ctx, corpusID)
	if err != nil {
		return h.replyForError(ctx, channelID, corpusID, query, err)
	}

	entry, err := refbot.ResolveEntry(corpus, h.Matcher, query)
	if err != nil {
		return h.replyForError(ctx, channelID, corpusID, query, err)
	}

	pages := card.PagesFromModel(refbot.RenderEntry(entry), h.pageSize())
	c, err := card.New(invokerID, pages, h.ControlMode, h.Expiry)
	if err != nil {
		return err
	}

	msg, err := h.Transport.Send(ctx, channelID, pages[0], c.Controls())
	if err != nil {
		return err
	}
	h.Cards.Register(c, msg)

	h.logger().Debug("lookup",
		slog.String("corpus", corpusID),
		slog.String("query", query),
		slog.String("match", entry.Aliases[0]),
		slog.Int("pages", len(pages)))
	return nil
}

// HandleNavigation dispatches one incoming navigation event. Events that
// do not move a card (unknown message, non-owner, expired, out of bounds)
// are dropped silently. Edit failures are suppressed: the message may have
// been deleted out from under the card, and a stale edit must not crash
// it.
func (h *Handler) HandleNavigation(ctx context.Context, ev refbot.NavigationEvent) {
	c, page, ok := h.Cards.Navigate(ev)
	if !ok {
		return
	}

	if err := h.Transport.Edit(ctx, c.Message(), page); err != nil {
		h.logger().Debug("edit failed",
			slog.String("message", ev.MessageID),
			slog.String("err", err.Error()))
	}
}

// Delete removes a delivered card's message immediately, regardless of its
// lifecycle state.
func (h *Handler) Delete(ctx context.Context, messageID string) error {
	c, ok := h.Cards.Remove(messageID)
	if !ok {
		return refbot.Errorf(refbot.ENOTFOUND, "no card for message %q", messageID)
	}
	return h.Transport.Delete(ctx, c.Message())
}

// Sweep drops expired cards from the registry. Run periodically.
func (h *Handler) Sweep() int {
	return h.Cards.Sweep()
}

// NormalizeQuery prepends std:: for the C++ symbol corpus when missing.
// The corpus index itself never normalizes; this is the caller's job.
func NormalizeQuery(corpusID, query string) string {
	if corpusID == CorpusCppSymbols && !strings.HasPrefix(query, "std::") {
		return "std::" + query
	}
	return query
}

// replyForError converts expected resolution failures into user-facing
// notices. Unexpected errors propagate.
func (h *Handler) replyForError(ctx context.Context, channelID, corpusID, query string, err error) error {
	var reply string
	switch refbot.ErrorCode(err) {
	case refbot.EUNAVAILABLE:
		reply = ReplyUnavailable
	case refbot.ENOTFOUND:
		reply = ReplyNotFound
	default:
		return err
	}

	h.logger().Info("lookup failed",
		slog.String("corpus", corpusID),
		slog.String("query", query),
		slog.String("code", refbot.ErrorCode(err)))

	_, sendErr := h.Transport.Send(ctx, channelID, &refbot.Page{Body: reply}, nil)
	return sendErr
}

func (h *Handler) pageSize() int {
	if h.PageSize > 0 {
		return h.PageSize
	}
	return refbot.DefaultPageSize
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
