// Package envelope carries message identity and correlation metadata
// alongside a domain event or command on the wire, generalized from the
// original source's MessageIdentity into the Go engine's message headers.
package envelope

import (
	"time"

	"github.com/google/uuid"
)

// MessageID uniquely identifies one message on the bus.
type MessageID uuid.UUID

func NewMessageID() MessageID { return MessageID(newUUID()) }

func (m MessageID) String() string { return uuid.UUID(m).String() }

// ParseMessageID parses a message id previously rendered by String, the
// inverse needed when reconstructing an Identity for an event replayed off
// the store rather than freshly minted.
func ParseMessageID(s string) (MessageID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MessageID{}, err
	}
	return MessageID(id), nil
}

// CorrelationID threads every message produced in response to an initiating
// request or command, directly or transitively.
type CorrelationID string

func NewCorrelationID() CorrelationID { return CorrelationID(newUUID().String()) }

// CausationID names the message that directly caused this one. A message
// caused by a user request typically sets CausationID equal to MessageID
// (it caused itself); a message produced in reaction to another message
// sets CausationID to that message's MessageID.
type CausationID string

func CausationFromMessage(id MessageID) CausationID { return CausationID(id.String()) }

func NewCausationID() CausationID { return CausationID(newUUID().String()) }

// Actor identifies who or what initiated a message.
type Actor struct {
	Kind string // user | system | api_client | job | hr_system | identity_provider | skills_system | networking_platform | unknown
	ID   string
}

var ActorUnknown = Actor{Kind: "unknown"}

func ActorUser(id string) Actor   { return Actor{Kind: "user", ID: id} }
func ActorSystem(name string) Actor { return Actor{Kind: "system", ID: name} }
func ActorAPIClient(id string) Actor { return Actor{Kind: "api_client", ID: id} }
func ActorJob(name string) Actor  { return Actor{Kind: "job", ID: name} }

// Identity is the full message-identity block attached to every envelope.
type Identity struct {
	MessageID     MessageID
	CorrelationID CorrelationID
	CausationID   CausationID
	Timestamp     time.Time
	Actor         Actor
	Metadata      map[string]string
}

// NewIdentity starts a fresh causal chain: correlation and causation both
// derive from the new message's own id, matching MessageIdentity::new.
func NewIdentity(actor Actor, now time.Time) Identity {
	id := NewMessageID()
	return Identity{
		MessageID:     id,
		CorrelationID: CorrelationID(id.String()),
		CausationID:   CausationFromMessage(id),
		Timestamp:     now,
		Actor:         actor,
		Metadata:      map[string]string{},
	}
}

// CausedBy derives a new Identity for a message produced in direct reaction
// to parent: same correlation (the causal chain is preserved end to end),
// causation set to parent's message id, and a fresh message id.
func (parent Identity) CausedBy(now time.Time) Identity {
	id := NewMessageID()
	return Identity{
		MessageID:     id,
		CorrelationID: parent.CorrelationID,
		CausationID:   CausationFromMessage(parent.MessageID),
		Timestamp:     now,
		Actor:         parent.Actor,
		Metadata:      cloneMetadata(parent.Metadata),
	}
}

// WithMetadata returns a copy of id with key=value merged in.
func (id Identity) WithMetadata(key, value string) Identity {
	out := id
	out.Metadata = cloneMetadata(id.Metadata)
	out.Metadata[key] = value
	return out
}

func cloneMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Envelope wraps a serialized domain payload with its Identity and the
// subject it was (or will be) published on.
type Envelope struct {
	Identity Identity
	Subject  string
	Type     string // the event or command type name, e.g. "PersonCreated"
	Payload  []byte // msgpack-encoded domain event/command
}

func newUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
