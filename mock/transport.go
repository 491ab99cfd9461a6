package mock

import (
	"context"

	"github.com/fwojciec/refbot"
)

var _ refbot.Transport = (*Transport)(nil)

// Transport is a mock implementation of refbot.Transport.
type Transport struct {
	SendFn   func(ctx context.Context, channelID string, page *refbot.Page, controls []string) (*refbot.Message, error)
	EditFn   func(ctx context.Context, msg *refbot.Message, page *refbot.Page) error
	DeleteFn func(ctx context.Context, msg *refbot.Message) error
}

func (t *Transport) Send(ctx context.Context, channelID string, page *refbot.Page, controls []string) (*refbot.Message, error) {
	return t.SendFn(ctx, channelID, page, controls)
}

func (t *Transport) Edit(ctx context.Context, msg *refbot.Message, page *refbot.Page) error {
	return t.EditFn(ctx, msg, page)
}

func (t *Transport) Delete(ctx context.Context, msg *refbot.Message) error {
	return t.DeleteFn(ctx, msg)
}
