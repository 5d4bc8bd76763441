// Package streaming holds the JetStream stream/consumer configuration,
// retry policy, circuit breaker, and dead-letter types that sit between the
// command processor and the wire, generalized from
// original_source/src/infrastructure/{retry,streaming}.rs and the teacher's
// packages/go-core/natsclient stream-provisioning idiom.
package streaming

import "time"

const (
	// StreamPersonEvents is the durable stream holding every Person domain
	// event, addressed by the full events.person.> subject tree.
	StreamPersonEvents = "PERSON_EVENTS"
	// StreamPersonEventsDLQ receives events that exhausted RetryPolicy.
	StreamPersonEventsDLQ = "PERSON_EVENTS_DLQ"
	// KVBucketSnapshots is the JetStream Key-Value bucket used by
	// internal/snapshot, one entry per aggregate id.
	KVBucketSnapshots = "PERSON_SNAPSHOTS"

	subjectPersonEvents = "events.person.>"
	subjectDLQ           = "dlq.person.>"
)

// StreamConfig mirrors StreamingConfig's defaults from the original source.
type StreamConfig struct {
	Name     string
	Subjects []string
	MaxAge   time.Duration
	MaxMsgs  int64
	MaxBytes int64
}

// DefaultStreamConfig reproduces StreamingConfig::default(): PERSON_EVENTS,
// 1 year retention, 10M messages, 10GB.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Name:     StreamPersonEvents,
		Subjects: []string{subjectPersonEvents},
		MaxAge:   365 * 24 * time.Hour,
		MaxMsgs:  10_000_000,
		MaxBytes: 10 * 1024 * 1024 * 1024,
	}
}

// DeadLetterConfig mirrors DeadLetterConfig::default(): PERSON_EVENTS_DLQ
// with max_delivers = 3.
type DeadLetterConfig struct {
	StreamName  string
	Subjects    []string
	MaxDelivers int
}

func DefaultDeadLetterConfig() DeadLetterConfig {
	return DeadLetterConfig{
		StreamName:  StreamPersonEventsDLQ,
		Subjects:    []string{subjectDLQ},
		MaxDelivers: 3,
	}
}

// ConsumerConfig describes one durable JetStream pull consumer.
type ConsumerConfig struct {
	DurableName    string
	FilterSubjects []string
	MaxDeliver     int
	AckWait        time.Duration
}

// DefaultConsumerConfig is the projection/policy consumer's baseline: ack
// explicitly, redeliver up to DeadLetterConfig.MaxDelivers times, 30s to ack.
func DefaultConsumerConfig(durableName string, filterSubjects ...string) ConsumerConfig {
	return ConsumerConfig{
		DurableName:    durableName,
		FilterSubjects: filterSubjects,
		MaxDeliver:     DefaultDeadLetterConfig().MaxDelivers,
		AckWait:        30 * time.Second,
	}
}
