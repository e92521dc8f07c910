package publisher

import (
	"context"
	"sync"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Message is one publication recorded by FakePublisher.
type Message struct {
	Topic   string
	Payload []byte
}

// FakePublisher records publications for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// Prefix is the topic prefix used to build Message.Topic.
	Prefix string
	// Messages contains everything that was published.
	Messages []Message
	// PublishError, if set, is returned by Publish.
	PublishError error
	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher with the given topic prefix.
func NewFakePublisher(prefix string) *FakePublisher {
	return &FakePublisher{
		Prefix: prefix,
	}
}

// Publish records the summary.
func (f *FakePublisher) Publish(_ context.Context, summary machine.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(summary)
	if err != nil {
		return err
	}

	f.Messages = append(f.Messages, Message{
		Topic:   Topic(f.Prefix, summary.Resource),
		Payload: payload,
	})

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Closed = true

	return nil
}
