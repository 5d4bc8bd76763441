package person

import "time"

// Event is the tagged sum of spec.md §3. Every concrete event carries the
// id of the aggregate it applies to and the instant it occurred; envelope
// metadata (message/correlation/causation ids, actor) is attached outside
// the pure core by the command processor (spec.md §4.1).
type Event interface {
	PersonID() ID
	OccurredAt() time.Time
	EventType() string

	// Operation is the snake_case verb spec.md §4.6 puts in a subject's
	// operation segment (e.g. "created", "employment_added"), distinct
	// from EventType's PascalCase Go type name.
	Operation() string
}

type base struct {
	ID_         ID
	OccurredAt_ time.Time
}

func (b base) PersonID() ID           { return b.ID_ }
func (b base) OccurredAt() time.Time  { return b.OccurredAt_ }

func newBase(id ID, occurredAt time.Time) base { return base{ID_: id, OccurredAt_: occurredAt} }

// PersonCreated is the first event in every aggregate's stream.
type PersonCreated struct {
	base
	LegalName Name
}

func (PersonCreated) EventType() string { return "PersonCreated" }

func (PersonCreated) Operation() string { return "created" }

type NameUpdated struct {
	base
	NewName Name
}

func (NameUpdated) EventType() string { return "NameUpdated" }

func (NameUpdated) Operation() string { return "name_updated" }

type BirthDateSet struct {
	base
	BirthDate time.Time
}

func (BirthDateSet) EventType() string { return "BirthDateSet" }

func (BirthDateSet) Operation() string { return "birth_date_set" }

type AttributeRecorded struct {
	base
	Attribute Attribute
}

func (AttributeRecorded) EventType() string { return "AttributeRecorded" }

func (AttributeRecorded) Operation() string { return "attribute_recorded" }

// AttributeUpdated closes the prior attribute of the same type (by setting
// its ValidUntil) and records the new one, per the resolution of spec.md §9's
// open question (see DESIGN.md).
type AttributeUpdated struct {
	base
	AttributeType AttributeType
	ClosedAt      time.Time
	NewAttribute  Attribute
}

func (AttributeUpdated) EventType() string { return "AttributeUpdated" }

func (AttributeUpdated) Operation() string { return "attribute_updated" }

// AttributeInvalidated marks an attribute invalid as of InvalidatedAt
// without replacing it.
type AttributeInvalidated struct {
	base
	AttributeType AttributeType
	InvalidatedAt time.Time
}

func (AttributeInvalidated) EventType() string { return "AttributeInvalidated" }

func (AttributeInvalidated) Operation() string { return "attribute_invalidated" }

type ComponentRegistered struct {
	base
	Component ComponentType
}

func (ComponentRegistered) EventType() string { return "ComponentRegistered" }

func (ComponentRegistered) Operation() string { return "component_registered" }

type ComponentUnregistered struct {
	base
	Component ComponentType
}

func (ComponentUnregistered) EventType() string { return "ComponentUnregistered" }

func (ComponentUnregistered) Operation() string { return "component_unregistered" }

type PersonDeactivated struct {
	base
	Reason string
	Since  time.Time
}

func (PersonDeactivated) EventType() string { return "PersonDeactivated" }

func (PersonDeactivated) Operation() string { return "deactivated" }

type PersonReactivated struct {
	base
}

func (PersonReactivated) EventType() string { return "PersonReactivated" }

func (PersonReactivated) Operation() string { return "reactivated" }

type DeathRecorded struct {
	base
	DateOfDeath time.Time
}

func (DeathRecorded) EventType() string { return "DeathRecorded" }

func (DeathRecorded) Operation() string { return "death_recorded" }

type PersonMergedInto struct {
	base
	Target ID
}

func (PersonMergedInto) EventType() string { return "PersonMergedInto" }

func (PersonMergedInto) Operation() string { return "merged_into" }

// --- ComponentDataEvent variants (spec.md §3, supplemented per SPEC_FULL.md §4) ---

type EmailAdded struct {
	base
	InstanceID string
	Address    string
	IsPrimary  bool
}

func (EmailAdded) EventType() string { return "EmailAdded" }

func (EmailAdded) Operation() string { return "email_added" }

type EmailUpdated struct {
	base
	InstanceID string
	Address    string
	IsPrimary  bool
	Verified   bool
}

func (EmailUpdated) EventType() string { return "EmailUpdated" }

func (EmailUpdated) Operation() string { return "email_updated" }

type PhoneAdded struct {
	base
	InstanceID string
	Number     string
	Kind       string
	IsPrimary  bool
}

func (PhoneAdded) EventType() string { return "PhoneAdded" }

func (PhoneAdded) Operation() string { return "phone_added" }

type SkillAdded struct {
	base
	InstanceID  string
	Name        string
	Proficiency string
	LastUsed    *time.Time
}

func (SkillAdded) EventType() string { return "SkillAdded" }

func (SkillAdded) Operation() string { return "skill_added" }

type EmploymentAdded struct {
	base
	InstanceID   string
	Organization string
	Title        string
	StartedOn    time.Time
	EndedOn      *time.Time
}

func (EmploymentAdded) EventType() string { return "EmploymentAdded" }

func (EmploymentAdded) Operation() string { return "employment_added" }

type AddressAdded struct {
	base
	InstanceID string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

func (AddressAdded) EventType() string { return "AddressAdded" }

func (AddressAdded) Operation() string { return "address_added" }
