package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const BlacklistInvalidationChannel = "sentinel:blacklist:invalidate"

// InvalidationMessage announces that the blacklist dictionary changed
// and every process must drop its local projection.
type InvalidationMessage struct {
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishBlacklistInvalidation broadcasts an invalidation to sibling
// processes.
func PublishBlacklistInvalidation(ctx context.Context, client *Client, origin string) error {
	payload, err := json.Marshal(InvalidationMessage{
		Origin:    origin,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return client.Publish(ctx, BlacklistInvalidationChannel, payload)
}

// ListenBlacklistInvalidations invokes onInvalidate for every message
// on the invalidation channel until ctx is cancelled.
func ListenBlacklistInvalidations(ctx context.Context, client *Client, logger *logrus.Logger, onInvalidate func()) {
	sub := client.Subscribe(ctx, BlacklistInvalidationChannel)
	ch := sub.Channel()

	go func() {
		defer func() {
			_ = sub.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var m InvalidationMessage
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					logger.WithError(err).Warn("malformed blacklist invalidation message")
					continue
				}
				logger.WithField("origin", m.Origin).Debug("blacklist invalidation received")
				onInvalidate()
			}
		}
	}()
}
