package person

import "time"

// These constructors exist for callers outside the package (codecs, tests,
// replay tooling) that need to build a concrete Event without access to the
// unexported base embedding. decide.go builds events directly with struct
// literals since it already lives in this package.

func NewPersonCreated(id ID, at time.Time, legalName Name) PersonCreated {
	return PersonCreated{base: newBase(id, at), LegalName: legalName}
}

func NewNameUpdated(id ID, at time.Time, newName Name) NameUpdated {
	return NameUpdated{base: newBase(id, at), NewName: newName}
}

func NewBirthDateSet(id ID, at time.Time, birthDate time.Time) BirthDateSet {
	return BirthDateSet{base: newBase(id, at), BirthDate: birthDate}
}

func NewAttributeRecorded(id ID, at time.Time, attribute Attribute) AttributeRecorded {
	return AttributeRecorded{base: newBase(id, at), Attribute: attribute}
}

func NewAttributeUpdated(id ID, at time.Time, attributeType AttributeType, closedAt time.Time, newAttribute Attribute) AttributeUpdated {
	return AttributeUpdated{base: newBase(id, at), AttributeType: attributeType, ClosedAt: closedAt, NewAttribute: newAttribute}
}

func NewAttributeInvalidated(id ID, at time.Time, attributeType AttributeType, invalidatedAt time.Time) AttributeInvalidated {
	return AttributeInvalidated{base: newBase(id, at), AttributeType: attributeType, InvalidatedAt: invalidatedAt}
}

func NewComponentRegistered(id ID, at time.Time, component ComponentType) ComponentRegistered {
	return ComponentRegistered{base: newBase(id, at), Component: component}
}

func NewComponentUnregistered(id ID, at time.Time, component ComponentType) ComponentUnregistered {
	return ComponentUnregistered{base: newBase(id, at), Component: component}
}

func NewPersonDeactivated(id ID, at time.Time, reason string, since time.Time) PersonDeactivated {
	return PersonDeactivated{base: newBase(id, at), Reason: reason, Since: since}
}

func NewPersonReactivated(id ID, at time.Time) PersonReactivated {
	return PersonReactivated{base: newBase(id, at)}
}

func NewDeathRecorded(id ID, at time.Time, dateOfDeath time.Time) DeathRecorded {
	return DeathRecorded{base: newBase(id, at), DateOfDeath: dateOfDeath}
}

func NewPersonMergedInto(id ID, at time.Time, target ID) PersonMergedInto {
	return PersonMergedInto{base: newBase(id, at), Target: target}
}

func NewEmailAdded(id ID, at time.Time, instanceID, address string, isPrimary bool) EmailAdded {
	return EmailAdded{base: newBase(id, at), InstanceID: instanceID, Address: address, IsPrimary: isPrimary}
}

func NewEmailUpdated(id ID, at time.Time, instanceID, address string, isPrimary, verified bool) EmailUpdated {
	return EmailUpdated{base: newBase(id, at), InstanceID: instanceID, Address: address, IsPrimary: isPrimary, Verified: verified}
}

func NewPhoneAdded(id ID, at time.Time, instanceID, number, kind string, isPrimary bool) PhoneAdded {
	return PhoneAdded{base: newBase(id, at), InstanceID: instanceID, Number: number, Kind: kind, IsPrimary: isPrimary}
}

func NewSkillAdded(id ID, at time.Time, instanceID, name, proficiency string, lastUsed *time.Time) SkillAdded {
	return SkillAdded{base: newBase(id, at), InstanceID: instanceID, Name: name, Proficiency: proficiency, LastUsed: lastUsed}
}

func NewEmploymentAdded(id ID, at time.Time, instanceID, organization, title string, startedOn time.Time, endedOn *time.Time) EmploymentAdded {
	return EmploymentAdded{base: newBase(id, at), InstanceID: instanceID, Organization: organization, Title: title, StartedOn: startedOn, EndedOn: endedOn}
}

func NewAddressAdded(id ID, at time.Time, instanceID, line1, line2, city, region, postalCode, country string) AddressAdded {
	return AddressAdded{base: newBase(id, at), InstanceID: instanceID, Line1: line1, Line2: line2, City: city, Region: region, PostalCode: postalCode, Country: country}
}
