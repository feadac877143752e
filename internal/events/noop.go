package events

import "context"

// NoopPublisher is a Publisher that does nothing (used when the bus is not
// configured and streaming is served by the in-process bus alone).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, subject string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
