package streaming

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// FailedEvent is the record published to StreamPersonEventsDLQ once
// RetryPolicy has been exhausted, mirroring original_source's FailedEvent.
type FailedEvent struct {
	EventID          string
	OriginalSubject  string
	Payload          []byte
	FailureReason    string
	FailureCount     uint32
	FirstFailedAt    time.Time
	LastFailedAt     time.Time
	ConsumerName     string
}

// DeadLetterPublisher publishes FailedEvent records to the DLQ stream. The
// JetStream-backed implementation lives in internal/streaming/jetstream.go;
// this interface lets JetStreamPublisher depend on the behavior without the
// wire details.
type DeadLetterPublisher interface {
	PublishFailed(ctx context.Context, event FailedEvent) error
}

// EncodeFailedEvent msgpack-encodes a FailedEvent for the wire, matching
// the engine's compact binary payload convention (spec.md §6).
func EncodeFailedEvent(event FailedEvent) ([]byte, error) {
	return msgpack.Marshal(event)
}

func DecodeFailedEvent(data []byte) (FailedEvent, error) {
	var event FailedEvent
	err := msgpack.Unmarshal(data, &event)
	return event, err
}
