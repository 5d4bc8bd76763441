package eventstore

import (
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// PersonCodec adapts person.EncodeEvent/person.DecodeEvent to the Codec
// interface JetStream depends on, keeping the event-type switch that knows
// about every concrete person.Event variant inside the person package
// itself rather than duplicated here.
type PersonCodec struct{}

func (PersonCodec) Decode(eventType string, occurredAt time.Time, personID person.ID, payload []byte) (person.Event, error) {
	return person.DecodeEvent(eventType, personID, occurredAt, payload)
}

func (PersonCodec) EncodePayload(event person.Event) ([]byte, error) {
	return person.EncodeEvent(event)
}
