package events

import "context"

// NoopPublisher discards events. Used when the event bus is disabled.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ string, _ interface{}) error {
	return nil
}
