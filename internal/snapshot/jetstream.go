package snapshot

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/streaming"
)

// wireRecord is Record's msgpack wire shape: the Person state is encoded
// separately so its own Attribute.EncodeMsgpack/DecodeMsgpack hooks apply.
type wireRecord struct {
	Version   uint64
	State     []byte
	CreatedAt time.Time
}

// JetStream stores snapshots in a JetStream KV bucket, one entry per
// aggregate id. KV's own revision number gives compare-and-swap for free;
// this implementation doesn't need it since Put always wins — the
// repository only ever calls Put after a successful append, so a later
// snapshot is always valid to overwrite an earlier one.
type JetStream struct {
	js  nats.JetStreamContext
	kv  nats.KeyValue
	log *zap.Logger
}

// NewJetStream opens (creating if necessary) the PERSON_SNAPSHOTS bucket.
func NewJetStream(js nats.JetStreamContext, log *zap.Logger) (*JetStream, error) {
	kv, err := js.KeyValue(streaming.KVBucketSnapshots)
	if err == nats.ErrBucketNotFound {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: streaming.KVBucketSnapshots,
		})
	}
	if err != nil {
		return nil, domainerr.ExternalService("nats jetstream kv", err)
	}
	return &JetStream{js: js, kv: kv, log: log}, nil
}

func (s *JetStream) Put(ctx context.Context, record Record) error {
	data, err := msgpack.Marshal(record.State)
	if err != nil {
		return domainerr.Serialization("snapshot", err)
	}
	wire := wireRecord{Version: record.Version, State: data, CreatedAt: record.CreatedAt}
	encoded, err := msgpack.Marshal(wire)
	if err != nil {
		return domainerr.Serialization("snapshot", err)
	}
	if _, err := s.kv.Put(record.AggregateID.String(), encoded); err != nil {
		return domainerr.ExternalService("nats jetstream kv", err)
	}
	return nil
}

func (s *JetStream) Latest(ctx context.Context, aggregateID person.ID) (Record, bool, error) {
	entry, err := s.kv.Get(aggregateID.String())
	if err == nats.ErrKeyNotFound {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, domainerr.ExternalService("nats jetstream kv", err)
	}

	var wire wireRecord
	if err := msgpack.Unmarshal(entry.Value(), &wire); err != nil {
		return Record{}, false, domainerr.Serialization("snapshot", err)
	}
	var state person.Person
	if err := msgpack.Unmarshal(wire.State, &state); err != nil {
		return Record{}, false, domainerr.Serialization("snapshot", err)
	}
	return Record{
		AggregateID: aggregateID,
		Version:     wire.Version,
		State:       state,
		CreatedAt:   wire.CreatedAt,
	}, true, nil
}
