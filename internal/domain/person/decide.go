package person

import (
	"github.com/arc-self/person-engine/internal/domainerr"
)

// Decide is the pure, total, deterministic command handler of spec.md §4.1.
// It never performs I/O; the only errors it returns are ValidationError or
// NotFoundError. Decide never panics on a well-typed command.
func Decide(state Person, cmd Command) ([]Event, error) {
	if cmd.CommandType() != "CreatePerson" {
		if state.Lifecycle.State == "" {
			return nil, domainerr.NotFound(cmd.PersonID().String())
		}
	}

	switch c := cmd.(type) {
	case CreatePerson:
		return decideCreatePerson(state, c)
	case UpdateName:
		return decideUpdateName(state, c)
	case SetBirthDate:
		return decideSetBirthDate(state, c)
	case RecordAttribute:
		return decideRecordAttribute(state, c)
	case UpdateAttribute:
		return decideUpdateAttribute(state, c)
	case InvalidateAttribute:
		return decideInvalidateAttribute(state, c)
	case RegisterComponent:
		return decideRegisterComponent(state, c)
	case UnregisterComponent:
		return decideUnregisterComponent(state, c)
	case DeactivatePerson:
		return decideDeactivatePerson(state, c)
	case ReactivatePerson:
		return decideReactivatePerson(state, c)
	case RecordDeath:
		return decideRecordDeath(state, c)
	case MergePersons:
		return decideMergePersons(state, c)
	case AddEmail:
		return decideComponentData(state, c.cbase, ComponentEmail, EmailAdded{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Address: c.Address, IsPrimary: c.IsPrimary})
	case UpdateEmail:
		return decideComponentDataUpdate(state, c.cbase, ComponentEmail, EmailUpdated{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Address: c.Address, IsPrimary: c.IsPrimary, Verified: c.Verified})
	case AddPhone:
		return decideComponentData(state, c.cbase, ComponentPhone, PhoneAdded{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Number: c.Number, Kind: c.Kind, IsPrimary: c.IsPrimary})
	case AddSkill:
		return decideComponentData(state, c.cbase, ComponentSkill, SkillAdded{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Name: c.Name, Proficiency: c.Proficiency, LastUsed: c.LastUsed})
	case AddEmployment:
		return decideComponentData(state, c.cbase, ComponentEmployment, EmploymentAdded{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Organization: c.Organization, Title: c.Title, StartedOn: c.StartedOn, EndedOn: c.EndedOn})
	case AddAddress:
		return decideComponentData(state, c.cbase, ComponentAddress, AddressAdded{base: newBase(c.ID_, c.At), InstanceID: c.InstanceID, Line1: c.Line1, Line2: c.Line2, City: c.City, Region: c.Region, PostalCode: c.PostalCode, Country: c.Country})
	default:
		return nil, domainerr.Validation("unknown command type %s", cmd.CommandType())
	}
}

// requireMutable enforces the two lifecycle guards common to almost every
// command: terminal lifecycles reject everything, and a deactivated person
// only accepts ReactivatePerson, RecordDeath, and MergePersons.
func requireMutable(state Person, cmdType string) error {
	if state.Lifecycle.IsTerminal() {
		return domainerr.Validation("cannot modify a %s person", state.Lifecycle.State)
	}
	if state.Lifecycle.IsDeactivated() {
		switch cmdType {
		case "ReactivatePerson", "RecordDeath", "MergePersons":
			return nil
		default:
			return domainerr.Validation("cannot update inactive person")
		}
	}
	return nil
}

func decideCreatePerson(state Person, c CreatePerson) ([]Event, error) {
	if state.Lifecycle.State != "" {
		return nil, domainerr.Validation("person %s already exists", c.ID_)
	}
	if err := c.LegalName.Validate(); err != nil {
		return nil, err
	}
	return []Event{PersonCreated{base: newBase(c.ID_, c.At), LegalName: c.LegalName}}, nil
}

func decideUpdateName(state Person, c UpdateName) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	if err := c.NewName.Validate(); err != nil {
		return nil, err
	}
	return []Event{NameUpdated{base: newBase(c.ID_, c.At), NewName: c.NewName}}, nil
}

func decideSetBirthDate(state Person, c SetBirthDate) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	if state.CoreIdentity.BirthDate != nil {
		return nil, domainerr.Validation("birth date is immutable once set")
	}
	return []Event{BirthDateSet{base: newBase(c.ID_, c.At), BirthDate: c.BirthDate}}, nil
}

func decideRecordAttribute(state Person, c RecordAttribute) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	return []Event{AttributeRecorded{base: newBase(c.ID_, c.At), Attribute: c.Attribute}}, nil
}

func decideUpdateAttribute(state Person, c UpdateAttribute) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	existing := state.Attributes.OfType(c.AttributeType)
	if len(existing) == 0 {
		return nil, domainerr.Validation("no existing attribute of type %v to update", c.AttributeType)
	}
	return []Event{AttributeUpdated{
		base:          newBase(c.ID_, c.At),
		AttributeType: c.AttributeType,
		ClosedAt:      c.At,
		NewAttribute:  c.NewAttribute,
	}}, nil
}

func decideInvalidateAttribute(state Person, c InvalidateAttribute) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	existing := state.Attributes.OfType(c.AttributeType)
	if len(existing) == 0 {
		return nil, domainerr.Validation("no existing attribute of type %v to invalidate", c.AttributeType)
	}
	return []Event{AttributeInvalidated{base: newBase(c.ID_, c.At), AttributeType: c.AttributeType, InvalidatedAt: c.At}}, nil
}

func decideRegisterComponent(state Person, c RegisterComponent) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	if state.Components.Has(c.Component) {
		// Idempotent no-op, not an error.
		return nil, nil
	}
	return []Event{ComponentRegistered{base: newBase(c.ID_, c.At), Component: c.Component}}, nil
}

func decideUnregisterComponent(state Person, c UnregisterComponent) ([]Event, error) {
	if err := requireMutable(state, c.CommandType()); err != nil {
		return nil, err
	}
	if !state.Components.Has(c.Component) {
		return nil, nil
	}
	return []Event{ComponentUnregistered{base: newBase(c.ID_, c.At), Component: c.Component}}, nil
}

func decideDeactivatePerson(state Person, c DeactivatePerson) ([]Event, error) {
	if state.Lifecycle.IsTerminal() {
		return nil, domainerr.Validation("cannot modify a %s person", state.Lifecycle.State)
	}
	if state.Lifecycle.IsDeactivated() {
		return nil, domainerr.Validation("person is already deactivated")
	}
	return []Event{PersonDeactivated{base: newBase(c.ID_, c.At), Reason: c.Reason, Since: c.At}}, nil
}

func decideReactivatePerson(state Person, c ReactivatePerson) ([]Event, error) {
	if state.Lifecycle.IsTerminal() {
		return nil, domainerr.Validation("cannot modify a %s person", state.Lifecycle.State)
	}
	if !state.Lifecycle.IsDeactivated() {
		return nil, domainerr.Validation("reactivation is only valid from deactivated")
	}
	return []Event{PersonReactivated{base: newBase(c.ID_, c.At)}}, nil
}

func decideRecordDeath(state Person, c RecordDeath) ([]Event, error) {
	if state.Lifecycle.IsTerminal() {
		return nil, domainerr.Validation("cannot modify a %s person", state.Lifecycle.State)
	}
	return []Event{DeathRecorded{base: newBase(c.ID_, c.At), DateOfDeath: c.DateOfDeath}}, nil
}

func decideMergePersons(state Person, c MergePersons) ([]Event, error) {
	if state.Lifecycle.IsTerminal() {
		return nil, domainerr.Validation("cannot modify a %s person", state.Lifecycle.State)
	}
	if c.ID_ == c.Target {
		return nil, domainerr.Validation("cannot merge a person into themselves")
	}
	return []Event{PersonMergedInto{base: newBase(c.ID_, c.At), Target: c.Target}}, nil
}

func decideComponentData(state Person, c cbase, ct ComponentType, ev Event) ([]Event, error) {
	if err := requireMutable(state, ev.EventType()); err != nil {
		return nil, err
	}
	events := []Event{ev}
	if !state.Components.Has(ct) {
		events = append([]Event{ComponentRegistered{base: newBase(c.ID_, c.At), Component: ct}}, events...)
	}
	return events, nil
}

func decideComponentDataUpdate(state Person, c cbase, ct ComponentType, ev Event) ([]Event, error) {
	if err := requireMutable(state, ev.EventType()); err != nil {
		return nil, err
	}
	if !state.Components.Has(ct) {
		return nil, domainerr.Validation("no %s component registered to update", ct)
	}
	return []Event{ev}, nil
}
