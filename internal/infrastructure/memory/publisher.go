package memory

import "context"

// NoopPublisher stands in for the broker when RABBIT_URL is unset in dev.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishOrderCreated(ctx context.Context, body []byte) error { return nil }

func (NoopPublisher) Close() error { return nil }
