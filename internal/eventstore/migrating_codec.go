package eventstore

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/versioning"
)

// MigratingCodec wraps PersonCodec with spec.md §6's migrate_to_current
// step: before handing a payload to PersonCodec.Decode, it peeks for an
// explicit "version" field and, if present, runs the payload through
// registry until it matches the current schema. Payloads this engine's own
// EncodePayload produces never carry that field, so the common case is a
// single cheap map decode that finds nothing to migrate; the migration path
// only engages for messages replayed from an older schema generation.
type MigratingCodec struct {
	inner    PersonCodec
	registry *versioning.Registry
}

func NewMigratingCodec(registry *versioning.Registry) MigratingCodec {
	return MigratingCodec{inner: PersonCodec{}, registry: registry}
}

func (c MigratingCodec) EncodePayload(event person.Event) ([]byte, error) {
	return c.inner.EncodePayload(event)
}

func (c MigratingCodec) Decode(eventType string, occurredAt time.Time, personID person.ID, payload []byte) (person.Event, error) {
	var asMap map[string]interface{}
	if err := msgpack.Unmarshal(payload, &asMap); err != nil {
		return c.inner.Decode(eventType, occurredAt, personID, payload)
	}
	fromVersion, ok := asMap["version"].(string)
	if !ok || fromVersion == "" {
		return c.inner.Decode(eventType, occurredAt, personID, payload)
	}

	migrated, _, err := c.registry.MigrateToCurrent(eventType, fromVersion, asMap)
	if err != nil {
		return nil, err
	}
	remarshaled, err := msgpack.Marshal(migrated)
	if err != nil {
		return nil, err
	}
	return c.inner.Decode(eventType, occurredAt, personID, remarshaled)
}
