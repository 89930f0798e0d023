package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform an
// operation, such as delayed delivery or deadline extension.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker client that both publishes and consumes.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher sends messages to a destination. Domain outbound adapters
// depend on this side only.
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer reads messages from a source and runs the handler for each.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. The error return feeds the
// auto-ack wrapper when enabled; otherwise the handler acks explicitly.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is the broker-agnostic publish payload. Fields a broker
// does not model are ignored by its driver.
type OutgoingMessage struct {
	Body []byte

	// Key drives Kafka partitioning.
	Key []byte

	// Headers carry binary values and allow duplicate keys.
	Headers []Header

	// Attributes map to Pub/Sub style string attributes.
	Attributes map[string]string

	// OrderingKey is honored by Google Pub/Sub.
	OrderingKey string

	// Delay defers delivery where the broker supports it.
	Delay time.Duration

	// Metadata carries driver-specific publish settings.
	Metadata map[string]any
}

// Header is a message header entry.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult reports what the broker assigned to the published
// message. Most fields are only set by some drivers.
type PublishResult struct {
	MessageID string

	// Kafka-style coordinates.
	Topic     string
	Partition int32
	Offset    int64

	// Sequence is set by NATS JetStream.
	Sequence uint64

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time

	// Raw exposes the underlying driver result when available.
	Raw any
}

// Message is a received message. Drivers adapt their native type to it.
type Message interface {
	Body() []byte
	Key() []byte
	Headers() []Header
	Attributes() map[string]string

	ID() string
	Topic() string
	Subject() string
	Timestamp() time.Time

	// Ack marks the message processed (delete/commit/ack per broker).
	Ack(ctx context.Context) error
}

// Nackable requests redelivery where the broker supports a negative ack.
type Nackable interface {
	Nack(ctx context.Context) error
}

// Extendable pushes out the ack deadline or lease.
type Extendable interface {
	Extend(ctx context.Context, d time.Duration) error
}

// MetadataCarrier exposes driver-specific delivery metadata.
type MetadataCarrier interface {
	Metadata() map[string]any
}

// RawCarrier exposes the underlying driver message type.
type RawCarrier interface {
	Raw() any
}
