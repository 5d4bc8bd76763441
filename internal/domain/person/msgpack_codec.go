package person

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// attributeValueWire is the tagged-union wire shape for AttributeValue: a
// discriminant Kind plus whichever scalar field that kind populates. This
// is the one place AttributeValue's closed set of concrete types needs to
// be known outside the type switch in Map/MapValue.
type attributeValueWire struct {
	Kind string
	Str  string
	Time time.Time
	Num  float64
	Bool bool
}

func encodeAttributeValue(v AttributeValue) attributeValueWire {
	switch t := v.(type) {
	case TextValue:
		return attributeValueWire{Kind: "text", Str: string(t)}
	case DateValue:
		return attributeValueWire{Kind: "date", Time: time.Time(t)}
	case DateTimeValue:
		return attributeValueWire{Kind: "datetime", Time: time.Time(t)}
	case LengthValue:
		return attributeValueWire{Kind: "length", Num: float64(t)}
	case MassValue:
		return attributeValueWire{Kind: "mass", Num: float64(t)}
	case BooleanValue:
		return attributeValueWire{Kind: "boolean", Bool: bool(t)}
	case BloodTypeValue:
		return attributeValueWire{Kind: "blood_type", Str: string(t)}
	case EyeColorValue:
		return attributeValueWire{Kind: "eye_color", Str: string(t)}
	case HairColorValue:
		return attributeValueWire{Kind: "hair_color", Str: string(t)}
	case BiologicalSexValue:
		return attributeValueWire{Kind: "biological_sex", Str: string(t)}
	case HandednessValue:
		return attributeValueWire{Kind: "handedness", Str: string(t)}
	default:
		return attributeValueWire{Kind: "unknown"}
	}
}

func decodeAttributeValue(w attributeValueWire) (AttributeValue, error) {
	switch w.Kind {
	case "text":
		return TextValue(w.Str), nil
	case "date":
		return DateValue(w.Time), nil
	case "datetime":
		return DateTimeValue(w.Time), nil
	case "length":
		return LengthValue(w.Num), nil
	case "mass":
		return MassValue(w.Num), nil
	case "boolean":
		return BooleanValue(w.Bool), nil
	case "blood_type":
		return BloodTypeValue(w.Str), nil
	case "eye_color":
		return EyeColorValue(w.Str), nil
	case "hair_color":
		return HairColorValue(w.Str), nil
	case "biological_sex":
		return BiologicalSexValue(w.Str), nil
	case "handedness":
		return HandednessValue(w.Str), nil
	default:
		return nil, fmt.Errorf("person: unknown attribute value kind %q", w.Kind)
	}
}

type attributeWire struct {
	Type       AttributeType
	Value      attributeValueWire
	Temporal   Temporal
	Provenance Provenance
}

// EncodeMsgpack implements msgpack.CustomEncoder so that Attribute's
// interface-typed Value field round-trips through the tagged wire shape
// above instead of failing to encode.
func (a Attribute) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(attributeWire{
		Type:       a.Type,
		Value:      encodeAttributeValue(a.Value),
		Temporal:   a.Temporal,
		Provenance: a.Provenance,
	})
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of EncodeMsgpack.
func (a *Attribute) DecodeMsgpack(dec *msgpack.Decoder) error {
	var wire attributeWire
	if err := dec.Decode(&wire); err != nil {
		return err
	}
	v, err := decodeAttributeValue(wire.Value)
	if err != nil {
		return err
	}
	a.Type = wire.Type
	a.Value = v
	a.Temporal = wire.Temporal
	a.Provenance = wire.Provenance
	return nil
}

// EncodeEvent msgpack-encodes the event-specific fields of e (PersonID and
// OccurredAt are carried separately by the caller's envelope, per spec.md §6's
// wire format).
func EncodeEvent(e Event) ([]byte, error) {
	return msgpack.Marshal(e)
}

// DecodeEvent reconstructs a concrete Event of the named type from its
// encoded payload, re-attaching the identity fields the wire envelope
// carries outside the payload.
func DecodeEvent(eventType string, id ID, occurredAt time.Time, data []byte) (Event, error) {
	b := newBase(id, occurredAt)
	switch eventType {
	case "PersonCreated":
		var e PersonCreated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "NameUpdated":
		var e NameUpdated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "BirthDateSet":
		var e BirthDateSet
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "AttributeRecorded":
		var e AttributeRecorded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "AttributeUpdated":
		var e AttributeUpdated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "AttributeInvalidated":
		var e AttributeInvalidated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "ComponentRegistered":
		var e ComponentRegistered
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "ComponentUnregistered":
		var e ComponentUnregistered
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "PersonDeactivated":
		var e PersonDeactivated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "PersonReactivated":
		var e PersonReactivated
		e.base = b
		return e, nil
	case "DeathRecorded":
		var e DeathRecorded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "PersonMergedInto":
		var e PersonMergedInto
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "EmailAdded":
		var e EmailAdded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "EmailUpdated":
		var e EmailUpdated
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "PhoneAdded":
		var e PhoneAdded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "SkillAdded":
		var e SkillAdded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "EmploymentAdded":
		var e EmploymentAdded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	case "AddressAdded":
		var e AddressAdded
		if err := msgpack.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		e.base = b
		return e, nil
	default:
		return nil, fmt.Errorf("person: unknown event type %q", eventType)
	}
}
