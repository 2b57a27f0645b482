package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frahmantamala/commerce-management/internal/core/events"
)

func newTestBus() *events.EventBus {
	return events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := newTestBus()
	var seen []string

	bus.Subscribe("order.placed", func(ctx context.Context, e events.Event) error {
		seen = append(seen, "first")
		return nil
	})
	bus.Subscribe("order.placed", func(ctx context.Context, e events.Event) error {
		seen = append(seen, "second")
		return nil
	})

	err := bus.PublishSync(context.Background(), events.NewOrderPlacedEvent(1, 2, 3000, 2))
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestPublishSyncStopsAtFirstFailure(t *testing.T) {
	bus := newTestBus()
	boom := errors.New("boom")
	var secondRan bool

	bus.Subscribe("order.canceled", func(ctx context.Context, e events.Event) error {
		return boom
	})
	bus.Subscribe("order.canceled", func(ctx context.Context, e events.Event) error {
		secondRan = true
		return nil
	})

	err := bus.PublishSync(context.Background(), events.NewOrderCanceledEvent(1, 2, "test"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, secondRan)
}

func TestPublishSyncRecoversPanickingHandler(t *testing.T) {
	bus := newTestBus()

	bus.Subscribe("order.placed", func(ctx context.Context, e events.Event) error {
		panic("subscriber bug")
	})

	err := bus.PublishSync(context.Background(), events.NewOrderPlacedEvent(1, 2, 3000, 1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestPublishWithoutSubscribersIsANoOp(t *testing.T) {
	bus := newTestBus()
	assert.NoError(t, bus.Publish(context.Background(), events.NewOrderPlacedEvent(1, 2, 3000, 1)))
}
