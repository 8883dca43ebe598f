package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	Value int
}

func (e testEvent) EventName() string { return "test.event" }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var got []int
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		got = append(got, event.(testEvent).Value*10)
		return nil
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		got = append(got, event.(testEvent).Value*100)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), Value: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 20 || got[1] != 200 {
		t.Fatalf("expected handlers to run in registration order, got %v", got)
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)
	sentinel := errors.New("handler boom")

	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return sentinel
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected joined error to contain sentinel, got %v", err)
	}
}

func TestPublishIgnoresUnknownEventNames(t *testing.T) {
	bus := NewInMemoryBus(nil)
	// No handlers registered; must not panic or block.
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
}

func TestPublishDispatchesAsynchronously(t *testing.T) {
	bus := NewInMemoryBus(nil)
	done := make(chan int, 1)

	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		done <- event.(testEvent).Value
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), Value: 7})

	select {
	case v := <-done:
		if v != 7 {
			t.Fatalf("expected value 7, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}
}
