package person

import "time"

// Command is the input to Decide. Every command carries an explicit At
// timestamp rather than letting Decide read the wall clock, which is what
// keeps Decide a pure, deterministic function of its arguments (spec.md
// §4.1): whoever constructs the command stamps At (every NewXxx constructor
// takes it as an argument), not the aggregate core.
type Command interface {
	PersonID() ID
	CommandType() string
}

type cbase struct {
	ID_ ID
	At  time.Time
}

func (c cbase) PersonID() ID { return c.ID_ }

type CreatePerson struct {
	cbase
	LegalName Name
}

func (CreatePerson) CommandType() string { return "CreatePerson" }

type UpdateName struct {
	cbase
	NewName Name
}

func (UpdateName) CommandType() string { return "UpdateName" }

type SetBirthDate struct {
	cbase
	BirthDate time.Time
}

func (SetBirthDate) CommandType() string { return "SetBirthDate" }

type RecordAttribute struct {
	cbase
	Attribute Attribute
}

func (RecordAttribute) CommandType() string { return "RecordAttribute" }

type UpdateAttribute struct {
	cbase
	AttributeType AttributeType
	NewAttribute  Attribute
}

func (UpdateAttribute) CommandType() string { return "UpdateAttribute" }

type InvalidateAttribute struct {
	cbase
	AttributeType AttributeType
}

func (InvalidateAttribute) CommandType() string { return "InvalidateAttribute" }

type RegisterComponent struct {
	cbase
	Component ComponentType
}

func (RegisterComponent) CommandType() string { return "RegisterComponent" }

type UnregisterComponent struct {
	cbase
	Component ComponentType
}

func (UnregisterComponent) CommandType() string { return "UnregisterComponent" }

type DeactivatePerson struct {
	cbase
	Reason string
}

func (DeactivatePerson) CommandType() string { return "DeactivatePerson" }

type ReactivatePerson struct {
	cbase
}

func (ReactivatePerson) CommandType() string { return "ReactivatePerson" }

type RecordDeath struct {
	cbase
	DateOfDeath time.Time
}

func (RecordDeath) CommandType() string { return "RecordDeath" }

// MergePersons merges the source person (PersonID()) into Target. source == target
// is a validation error.
type MergePersons struct {
	cbase
	Target ID
	Reason string
}

func (MergePersons) CommandType() string { return "MergePersons" }

type AddEmail struct {
	cbase
	InstanceID string
	Address    string
	IsPrimary  bool
}

func (AddEmail) CommandType() string { return "AddEmail" }

type UpdateEmail struct {
	cbase
	InstanceID string
	Address    string
	IsPrimary  bool
	Verified   bool
}

func (UpdateEmail) CommandType() string { return "UpdateEmail" }

type AddPhone struct {
	cbase
	InstanceID string
	Number     string
	Kind       string
	IsPrimary  bool
}

func (AddPhone) CommandType() string { return "AddPhone" }

type AddSkill struct {
	cbase
	InstanceID  string
	Name        string
	Proficiency string
	LastUsed    *time.Time
}

func (AddSkill) CommandType() string { return "AddSkill" }

type AddEmployment struct {
	cbase
	InstanceID   string
	Organization string
	Title        string
	StartedOn    time.Time
	EndedOn      *time.Time
}

func (AddEmployment) CommandType() string { return "AddEmployment" }

type AddAddress struct {
	cbase
	InstanceID string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

func (AddAddress) CommandType() string { return "AddAddress" }

// At returns the command's asserted time, used by Decide to stamp events.
func At(c Command) time.Time {
	switch v := c.(type) {
	case CreatePerson:
		return v.At
	case UpdateName:
		return v.At
	case SetBirthDate:
		return v.At
	case RecordAttribute:
		return v.At
	case UpdateAttribute:
		return v.At
	case InvalidateAttribute:
		return v.At
	case RegisterComponent:
		return v.At
	case UnregisterComponent:
		return v.At
	case DeactivatePerson:
		return v.At
	case ReactivatePerson:
		return v.At
	case RecordDeath:
		return v.At
	case MergePersons:
		return v.At
	case AddEmail:
		return v.At
	case UpdateEmail:
		return v.At
	case AddPhone:
		return v.At
	case AddSkill:
		return v.At
	case AddEmployment:
		return v.At
	case AddAddress:
		return v.At
	default:
		return time.Time{}
	}
}

// NewCreatePerson and friends give callers a convenient constructor that
// fills in At; command processor tests construct commands this way.
func NewCreatePerson(id ID, name Name, at time.Time) CreatePerson {
	return CreatePerson{cbase: cbase{ID_: id, At: at}, LegalName: name}
}

func NewUpdateName(id ID, name Name, at time.Time) UpdateName {
	return UpdateName{cbase: cbase{ID_: id, At: at}, NewName: name}
}

func NewSetBirthDate(id ID, d time.Time, at time.Time) SetBirthDate {
	return SetBirthDate{cbase: cbase{ID_: id, At: at}, BirthDate: d}
}

func NewRecordAttribute(id ID, a Attribute, at time.Time) RecordAttribute {
	return RecordAttribute{cbase: cbase{ID_: id, At: at}, Attribute: a}
}

func NewUpdateAttribute(id ID, t AttributeType, a Attribute, at time.Time) UpdateAttribute {
	return UpdateAttribute{cbase: cbase{ID_: id, At: at}, AttributeType: t, NewAttribute: a}
}

func NewInvalidateAttribute(id ID, t AttributeType, at time.Time) InvalidateAttribute {
	return InvalidateAttribute{cbase: cbase{ID_: id, At: at}, AttributeType: t}
}

func NewRegisterComponent(id ID, c ComponentType, at time.Time) RegisterComponent {
	return RegisterComponent{cbase: cbase{ID_: id, At: at}, Component: c}
}

func NewUnregisterComponent(id ID, c ComponentType, at time.Time) UnregisterComponent {
	return UnregisterComponent{cbase: cbase{ID_: id, At: at}, Component: c}
}

func NewDeactivatePerson(id ID, reason string, at time.Time) DeactivatePerson {
	return DeactivatePerson{cbase: cbase{ID_: id, At: at}, Reason: reason}
}

func NewReactivatePerson(id ID, at time.Time) ReactivatePerson {
	return ReactivatePerson{cbase: cbase{ID_: id, At: at}}
}

func NewRecordDeath(id ID, d time.Time, at time.Time) RecordDeath {
	return RecordDeath{cbase: cbase{ID_: id, At: at}, DateOfDeath: d}
}

func NewMergePersons(id, target ID, reason string, at time.Time) MergePersons {
	return MergePersons{cbase: cbase{ID_: id, At: at}, Target: target, Reason: reason}
}
