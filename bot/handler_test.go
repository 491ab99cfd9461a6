package bot_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/bot"
	"github.com/fwojciec/refbot/card"
	"github.com/fwojciec/refbot/levenshtein"
	"github.com/fwojciec/refbot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channelID string
	page      *refbot.Page
	controls  []string
}

// recordingTransport collects sends and edits for assertions.
type recordingTransport struct {
	mock.Transport
	sent   []sentMessage
	edited []*refbot.Page
}

func newRecordingTransport() *recordingTransport {
	t := &recordingTransport{}
	t.SendFn = func(ctx context.Context, channelID string, page *refbot.Page, controls []string) (*refbot.Message, error) {
		t.sent = append(t.sent, sentMessage{channelID: channelID, page: page, controls: controls})
		return &refbot.Message{ID: "msg-1", ChannelID: channelID}, nil
	}
	t.EditFn = func(ctx context.Context, msg *refbot.Message, page *refbot.Page) error {
		t.edited = append(t.edited, page)
		return nil
	}
	t.DeleteFn = func(ctx context.Context, msg *refbot.Message) error {
		return nil
	}
	return t
}

func symbolCorpus() *refbot.Corpus {
	return &refbot.Corpus{
		ID: bot.CorpusCppSymbols,
		Entries: []*refbot.Entry{
			{
				Aliases:     []string{"std::abs"},
				Kind:        refbot.KindFunction,
				Params:      []string{"n - integer value"},
				Return:      "The absolute value of n.",
				Description: []string{strings.Repeat("d", 2500)},
			},
		},
	}
}

func newHandler(transport refbot.Transport, corpus *refbot.Corpus) *bot.Handler {
	return &bot.Handler{
		Corpora: &mock.CorpusService{
			CorpusFn: func(ctx context.Context, id string) (*refbot.Corpus, error) {
				if corpus == nil {
					return nil, refbot.Errorf(refbot.EUNAVAILABLE, "corpus %q has no reference data", id)
				}
				return corpus, nil
			},
		},
		Matcher:   levenshtein.NewMatcher(),
		Transport: transport,
		Cards:     card.NewRegistry(),
	}
}

func TestHandler_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("sends a card and registers it for navigation", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, symbolCorpus())

		err := h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs")

		require.NoError(t, err)
		require.Len(t, transport.sent, 1)
		assert.Equal(t, "C++: std::abs", transport.sent[0].page.Title)
		assert.Equal(t, []string{refbot.ControlPrev, refbot.ControlNext}, transport.sent[0].controls)
		assert.Equal(t, 1, h.Cards.Len())
	})

	t.Run("prepends std:: to symbol queries missing it", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, symbolCorpus())

		require.NoError(t, h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs"))
		require.Len(t, transport.sent, 1)
		assert.Contains(t, transport.sent[0].page.Title, "std::abs")
	})

	t.Run("unavailable corpus yields an administrator notice", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, nil)

		err := h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs")

		require.NoError(t, err)
		require.Len(t, transport.sent, 1)
		assert.Equal(t, bot.ReplyUnavailable, transport.sent[0].page.Body)
		assert.Zero(t, h.Cards.Len())
	})

	t.Run("empty corpus short-circuits to the unavailable notice", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, &refbot.Corpus{ID: bot.CorpusCppSymbols})

		err := h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs")

		require.NoError(t, err)
		require.Len(t, transport.sent, 1)
		assert.Equal(t, bot.ReplyUnavailable, transport.sent[0].page.Body)
	})

	t.Run("transport send failures propagate", func(t *testing.T) {
		t.Parallel()

		h := newHandler(&mock.Transport{
			SendFn: func(ctx context.Context, channelID string, page *refbot.Page, controls []string) (*refbot.Message, error) {
				return nil, errors.New("disconnected")
			},
		}, symbolCorpus())

		err := h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs")

		assert.Error(t, err)
	})
}

func TestHandler_HandleNavigation(t *testing.T) {
	t.Parallel()

	t.Run("owner navigation edits the delivered message", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, symbolCorpus())
		require.NoError(t, h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs"))

		h.HandleNavigation(context.Background(), refbot.NavigationEvent{
			MessageID: "msg-1",
			UserID:    "user-1",
			Control:   refbot.ControlNext,
		})

		require.Len(t, transport.edited, 1)
		assert.Equal(t, "Page 2 / 3", transport.edited[0].Footer)
	})

	t.Run("non-owner navigation performs no edit", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		h := newHandler(transport, symbolCorpus())
		require.NoError(t, h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs"))

		h.HandleNavigation(context.Background(), refbot.NavigationEvent{
			MessageID: "msg-1",
			UserID:    "user-2",
			Control:   refbot.ControlNext,
		})

		assert.Empty(t, transport.edited)
	})

	t.Run("edit failures are suppressed", func(t *testing.T) {
		t.Parallel()

		transport := newRecordingTransport()
		transport.EditFn = func(ctx context.Context, msg *refbot.Message, page *refbot.Page) error {
			return errors.New("message deleted")
		}
		h := newHandler(transport, symbolCorpus())
		require.NoError(t, h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs"))

		assert.NotPanics(t, func() {
			h.HandleNavigation(context.Background(), refbot.NavigationEvent{
				MessageID: "msg-1",
				UserID:    "user-1",
				Control:   refbot.ControlNext,
			})
		})
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the card and deletes the message", func(t *testing.T) {
		t.Parallel()

		deleted := 0
		transport := newRecordingTransport()
		transport.DeleteFn = func(ctx context.Context, msg *refbot.Message) error {
			deleted++
			return nil
		}
		h := newHandler(transport, symbolCorpus())
		require.NoError(t, h.Lookup(context.Background(), "user-1", "chan-1", bot.CorpusCppSymbols, "abs"))

		require.NoError(t, h.Delete(context.Background(), "msg-1"))

		assert.Equal(t, 1, deleted)
		assert.Zero(t, h.Cards.Len())
	})

	t.Run("unknown message returns not found", func(t *testing.T) {
		t.Parallel()

		h := newHandler(newRecordingTransport(), symbolCorpus())

		err := h.Delete(context.Background(), "msg-unknown")

		assert.Equal(t, refbot.ENOTFOUND, refbot.ErrorCode(err))
	})
}
