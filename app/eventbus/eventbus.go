// Package eventbus connects the modules over watermill. Production runs on
// NATS JetStream; tests and --test runs use the in-memory go-channel pubsub.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus is what modules publish to and the router subscribes from.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscriber() message.Subscriber
	Close() error
}

type natsEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	conn       *nc.Conn
	js         jetstream.JetStream
	logger     *slog.Logger
}

// NewNATSEventBus connects to NATS JetStream and wraps it in watermill
// publisher/subscriber pairs.
func NewNATSEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	conn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &wnats.NATSMarshaler{}

	publisher, err := wnats.NewPublisher(
		wnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	subscriber, err := wnats.NewSubscriber(
		wnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		conn.Close()
		publisher.Close()
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	bus := &natsEventBus{
		publisher:  publisher,
		subscriber: subscriber,
		conn:       conn,
		js:         js,
		logger:     logger,
	}
	if err := bus.ensureStream(ctx); err != nil {
		bus.Close()
		return nil, err
	}
	return bus, nil
}

// ensureStream creates the contest stream so messages survive consumer
// restarts between the hourly poll passes.
func (b *natsEventBus) ensureStream(ctx context.Context) error {
	_, err := b.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     "GWG",
		Subjects: []string{"round.>", "leaderboard.>"},
	})
	if err != nil {
		return fmt.Errorf("ensure GWG stream: %w", err)
	}
	return nil
}

func (b *natsEventBus) Publish(topic string, messages ...*message.Message) error {
	return b.publisher.Publish(topic, messages...)
}

func (b *natsEventBus) Subscriber() message.Subscriber {
	return b.subscriber
}

func (b *natsEventBus) Close() error {
	var firstErr error
	if err := b.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := b.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	b.conn.Close()
	return firstErr
}

type channelEventBus struct {
	pubsub *gochannel.GoChannel
}

// NewInMemoryEventBus builds a process-local bus. Used by --test runs and by
// handler tests; same semantics as the NATS bus, without persistence.
func NewInMemoryEventBus(logger *slog.Logger) EventBus {
	return &channelEventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
	}
}

func (b *channelEventBus) Publish(topic string, messages ...*message.Message) error {
	return b.pubsub.Publish(topic, messages...)
}

func (b *channelEventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

func (b *channelEventBus) Close() error {
	return b.pubsub.Close()
}
