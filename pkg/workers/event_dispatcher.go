package workers

import (
	"context"
	"log/slog"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/logger"
)

type Broadcaster interface {
	Broadcast(event domain.Event)
}

type SlotSaver interface {
	Save(ctx context.Context, name string, payload any) error
}

type CatalogSnapshot interface {
	All() []domain.ContentItem
}

type ChatLogSnapshot interface {
	All() []domain.ChatMessage
}

type PlaybackRunner interface {
	Run(ctx context.Context)
}

// eventDispatcher is the single consumer of the event channel. Every event
// goes to the stream hub; the ones that change durable state also get their
// snapshot written to the corresponding slot, and queued media commands kick
// the playback executor.
type eventDispatcher struct {
	eventCh  <-chan domain.Event
	hub      Broadcaster
	slots    SlotSaver
	catalog  CatalogSnapshot
	chatLog  ChatLogSnapshot
	playback PlaybackRunner
}

func NewEventDispatcher(
	eventCh <-chan domain.Event,
	hub Broadcaster,
	slots SlotSaver,
	catalog CatalogSnapshot,
	chatLog ChatLogSnapshot,
	playback PlaybackRunner,
) (*eventDispatcher, error) {
	return &eventDispatcher{
		eventCh:  eventCh,
		hub:      hub,
		slots:    slots,
		catalog:  catalog,
		chatLog:  chatLog,
		playback: playback,
	}, nil
}

func (e *eventDispatcher) Name() string { return "event_dispatcher" }

func (e *eventDispatcher) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", e.Name())
	defer slog.Info("Worker stopped", "name", e.Name())

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-e.eventCh:
			e.dispatch(ctx, event)
		}
	}
}

func (e *eventDispatcher) dispatch(ctx context.Context, event domain.Event) {
	if event.Err != nil {
		slog.ErrorContext(ctx, "service reported error", logger.Err(event.Err))
	}

	e.hub.Broadcast(event)

	switch {
	case event.Message != nil:
		e.save(ctx, domain.SlotChatMessages, e.chatLog.All())
	case event.Selection != nil:
		e.save(ctx, domain.SlotSelectedContent, event.Selection)
	case event.ItemAdded != nil, event.ItemDeleted != "", event.Summary != nil:
		e.save(ctx, domain.SlotContentItems, e.catalog.All())
	case event.Command != nil:
		// The executor emits player events back into the channel this
		// dispatcher drains, so it must not run on the dispatch goroutine.
		go e.playback.Run(ctx)
	}
}

func (e *eventDispatcher) save(ctx context.Context, slot string, payload any) {
	if err := e.slots.Save(ctx, slot, payload); err != nil {
		slog.ErrorContext(ctx, "saving state slot", "slot", slot, logger.Err(err))
	}
}
