// Package component defines the payload shapes stored in the Component
// Store side table — the data behind each ComponentType the Person
// aggregate only tracks as a registered set (spec.md §4.11). These types
// carry no behavior beyond validation; they are written by
// ComponentDataEvent handlers and read by the repository/projections.
package component

import (
	"time"

	"github.com/arc-self/person-engine/internal/domainerr"
)

// Proficiency is a SkillComponent's self-assessed level.
type Proficiency string

const (
	ProficiencyNovice    Proficiency = "novice"
	ProficiencyCompetent Proficiency = "competent"
	ProficiencyProficient Proficiency = "proficient"
	ProficiencyExpert    Proficiency = "expert"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyNovice, ProficiencyCompetent, ProficiencyProficient, ProficiencyExpert:
		return true
	default:
		return false
	}
}

// Email is the EmailComponent payload.
type Email struct {
	Address   string
	IsPrimary bool
	Verified  bool
}

func (e Email) Validate() error {
	if e.Address == "" {
		return domainerr.Validation("email component requires a non-empty address")
	}
	return nil
}

// Phone is the PhoneComponent payload.
type Phone struct {
	Number    string
	Kind      string // mobile | home | work | fax
	IsPrimary bool
}

func (p Phone) Validate() error {
	if p.Number == "" {
		return domainerr.Validation("phone component requires a non-empty number")
	}
	return nil
}

// Skill is the SkillComponent payload.
type Skill struct {
	Name        string
	Proficiency Proficiency
	LastUsed    *time.Time
}

func (s Skill) Validate() error {
	if s.Name == "" {
		return domainerr.Validation("skill component requires a non-empty name")
	}
	if !s.Proficiency.Valid() {
		return domainerr.Validation("skill component has invalid proficiency %q", s.Proficiency)
	}
	return nil
}

// Employment is the EmploymentComponent payload.
type Employment struct {
	Organization string
	Title        string
	StartedOn    time.Time
	EndedOn      *time.Time
}

func (e Employment) Validate() error {
	if e.Organization == "" {
		return domainerr.Validation("employment component requires a non-empty organization")
	}
	if e.EndedOn != nil && e.EndedOn.Before(e.StartedOn) {
		return domainerr.Validation("employment end date cannot precede its start date")
	}
	return nil
}

// Address is the AddressComponent payload.
type Address struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

func (a Address) Validate() error {
	if a.Line1 == "" || a.City == "" || a.Country == "" {
		return domainerr.Validation("address component requires line1, city, and country")
	}
	return nil
}

// Record is a single component-store row: one instance of one component
// type attached to one person, keyed by (PersonID, Type, InstanceID) as
// spec.md §4.11 describes.
type Record struct {
	PersonID   string
	Type       string
	InstanceID string
	Payload    any // one of Email, Phone, Skill, Employment, Address
	UpdatedAt  time.Time
}
