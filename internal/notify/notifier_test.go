package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type testRedisConfig struct {
	url     string
	channel string
}

func (c testRedisConfig) GetRedisURL() string       { return c.url }
func (c testRedisConfig) GetRedisTLSInsecure() bool { return false }
func (c testRedisConfig) GetChangeChannel() string  { return c.channel }

func TestNewWithoutRedisURLIsDisabled(t *testing.T) {
	n, err := New(testRedisConfig{}, nil)
	if err != nil {
		t.Fatalf("missing redis url should not error: %v", err)
	}
	if n != nil {
		t.Fatal("missing redis url should yield a disabled notifier")
	}

	// Nil notifiers must be safe to use.
	n.Publish(context.Background(), "orders")
	n.Subscribe(context.Background(), func(context.Context, string) {})
	if err := n.Close(); err != nil {
		t.Fatalf("closing a disabled notifier should be a no-op: %v", err)
	}
}

func TestPublishReachesOtherInstances(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testRedisConfig{url: "redis://" + srv.Addr(), channel: "workboard:changes"}

	publisher, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer publisher.Close()

	subscriber, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("subscriber: %v", err)
	}
	defer subscriber.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	subscriber.Subscribe(ctx, func(_ context.Context, source string) {
		received <- source
	})

	// Give the subscription a moment to establish before publishing.
	time.Sleep(50 * time.Millisecond)
	publisher.Publish(ctx, "orders")

	select {
	case source := <-received:
		if source != "orders" {
			t.Fatalf("expected source %q, got %q", "orders", source)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("change notification never arrived")
	}
}

func TestSubscribeSkipsOwnMessages(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := testRedisConfig{url: "redis://" + srv.Addr(), channel: "workboard:changes"}

	n, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("notifier: %v", err)
	}
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	n.Subscribe(ctx, func(_ context.Context, source string) {
		received <- source
	})

	time.Sleep(50 * time.Millisecond)
	n.Publish(ctx, "orders")

	select {
	case source := <-received:
		t.Fatalf("instance must not receive its own notification, got %q", source)
	case <-time.After(300 * time.Millisecond):
	}
}
