package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/itsyanis/1Day1Quote/internal/domain"
	"github.com/itsyanis/1Day1Quote/internal/usecase"
)

type QuoteEvent struct {
	Action string `json:"action"`
	Lang   string `json:"lang,omitempty"`
}

const (
	ActionNext    = "next"
	ActionToggle  = "toggle"
	ActionPreload = "preload"
)

type EventBusConsumer struct {
	uc     usecase.QuoteUseCase
	inject domain.MetadataInjector
	meta   func(domain.UIState, string) domain.PageMeta
	log    *slog.Logger
}

func NewEventBusConsumer(uc usecase.QuoteUseCase, inject domain.MetadataInjector, meta func(domain.UIState, string) domain.PageMeta, log *slog.Logger) *EventBusConsumer {
	if log == nil {
		log = slog.Default()
	}
	return &EventBusConsumer{uc: uc, inject: inject, meta: meta, log: log.With("component", "eventbus")}
}

func (c *EventBusConsumer) HandleMessage(ctx context.Context, msg []byte) error {
	var event QuoteEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return domain.InvalidData("decode event", "%v", err)
	}

	c.log.Debug("event received", "action", event.Action)

	switch event.Action {
	case ActionNext:
		c.uc.FetchQuote(ctx)
		if c.inject != nil && c.meta != nil {
			if err := c.inject.Inject(c.meta(c.uc.State(), event.Lang)); err != nil {
				c.log.Warn("metadata injection failed", "error", err)
			}
		}
	case ActionToggle:
		c.uc.ToggleAuthorInfo()
	case ActionPreload:
		added := c.uc.Preload(ctx)
		c.log.Debug("preload event handled", "added", added)
	default:
		return domain.InvalidData("decode event", "unknown action %q", event.Action)
	}
	return nil
}

func (c *EventBusConsumer) Consume(ctx context.Context, ch <-chan []byte) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := c.HandleMessage(ctx, msg); err != nil {
				c.log.Warn("event rejected", "error", fmt.Errorf("%s: %w", msg, err))
			}
		}
	}
}
