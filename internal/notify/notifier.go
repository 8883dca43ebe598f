// Package notify distributes board change notifications across API instances
// through a redis pub/sub channel.
package notify

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"workboard_backend/platform/config"
	"workboard_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChangeMessage is the wire payload of one change notification. Instance
// identifies the publisher so subscribers can skip their own messages; the
// publishing instance already refreshed locally before publishing.
type ChangeMessage struct {
	Instance string    `json:"instance"`
	Source   string    `json:"source"`
	At       time.Time `json:"at"`
}

// Notifier publishes and consumes change notifications on a shared channel.
type Notifier struct {
	client     *redis.Client
	channel    string
	instanceID string
	log        *logger.Logger
}

// New creates a notifier from the redis configuration. A missing REDIS_URL is
// not an error: single-instance deployments run without cross-instance
// notifications, and callers must treat a nil notifier as disabled.
func New(cfg config.RedisConfig, log *logger.Logger) (*Notifier, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig != nil {
			opt.TLSConfig = opt.TLSConfig.Clone()
			opt.TLSConfig.InsecureSkipVerify = true
		} else {
			opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}

	return &Notifier{
		client:     redis.NewClient(opt),
		channel:    cfg.GetChangeChannel(),
		instanceID: uuid.NewString(),
		log:        log,
	}, nil
}

// Publish announces a board change to all subscribed instances.
func (n *Notifier) Publish(ctx context.Context, source string) {
	if n == nil || n.client == nil {
		return
	}

	payload, err := json.Marshal(ChangeMessage{
		Instance: n.instanceID,
		Source:   source,
		At:       time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil && n.log != nil {
		n.log.Warn("change notification publish failed", "error", err, "source", source)
	}
}

// Subscribe consumes change notifications until ctx is cancelled, invoking
// onChange for every message published by another instance. It runs its own
// goroutine and returns immediately.
func (n *Notifier) Subscribe(ctx context.Context, onChange func(ctx context.Context, source string)) {
	if n == nil || n.client == nil {
		return
	}

	sub := n.client.Subscribe(ctx, n.channel)

	go func() {
		defer func() { _ = sub.Close() }()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var change ChangeMessage
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					if n.log != nil {
						n.log.Warn("malformed change notification", "error", err)
					}
					continue
				}
				if change.Instance == n.instanceID {
					continue
				}
				onChange(ctx, change.Source)
			}
		}
	}()
}

// Close releases the redis connection.
func (n *Notifier) Close() error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.client.Close()
}
