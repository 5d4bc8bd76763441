package person

import "time"

// AttributeCategory is the top-level tag of an AttributeType's tagged tree.
type AttributeCategory string

const (
	CategoryIdentifying AttributeCategory = "identifying"
	CategoryPhysical    AttributeCategory = "physical"
	CategoryHealthcare  AttributeCategory = "healthcare"
	CategoryDemographic AttributeCategory = "demographic"
)

// AttributeType is {category}(sub_kind) — a tagged tree with one level of
// nesting, e.g. Physical(Height), Healthcare(BloodType).
type AttributeType struct {
	Category AttributeCategory
	SubKind  string
}

func NewAttributeType(category AttributeCategory, subKind string) AttributeType {
	return AttributeType{Category: category, SubKind: subKind}
}

// Temporal carries the bi-temporal axes of a PersonAttribute: recorded_at is
// when we learned it, valid_from/valid_until is when it applies in the
// world.
type Temporal struct {
	RecordedAt time.Time
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// ValidOn implements: valid_from ≤ d ∧ (valid_until is absent ∨ d < valid_until);
// an absent valid_from means valid since recorded_at.
func (t Temporal) ValidOn(d time.Time) bool {
	from := t.RecordedAt
	if t.ValidFrom != nil {
		from = *t.ValidFrom
	}
	if d.Before(from) {
		return false
	}
	if t.ValidUntil != nil && !d.Before(*t.ValidUntil) {
		return false
	}
	return true
}

// Source is where an attribute's value came from.
type Source struct {
	Kind   SourceKind
	System string // only meaningful when Kind == SourceImported
}

type SourceKind string

const (
	SourceSelfReported     SourceKind = "self_reported"
	SourceMeasured         SourceKind = "measured"
	SourceDocumentVerified SourceKind = "document_verified"
	SourceImported         SourceKind = "imported"
)

// Confidence is the reliability of an attribute's value.
type Confidence string

const (
	ConfidenceCertain   Confidence = "certain"
	ConfidenceLikely    Confidence = "likely"
	ConfidenceUncertain Confidence = "uncertain"
)

// ProvenanceStep is one entry in a provenance trace.
type ProvenanceStep struct {
	Transformation string
	Actor          string
	Timestamp      time.Time
}

// Provenance records where a PersonAttribute's value came from, how
// confident we are in it, and the ordered sequence of transformations
// applied to reach its current form.
type Provenance struct {
	Source     Source
	Confidence Confidence
	Trace      []ProvenanceStep
}

// Attribute is the PersonAttribute value object of spec.md §3.
type Attribute struct {
	Type       AttributeType
	Value      AttributeValue
	Temporal   Temporal
	Provenance Provenance
}

// ValidOn delegates to Temporal.ValidOn.
func (a Attribute) ValidOn(d time.Time) bool { return a.Temporal.ValidOn(d) }

// Map applies a pure numeric transform to the attribute's value, preserving
// Type, Temporal, and Provenance — the functorial map of spec.md §3/§8.
func (a Attribute) Map(f func(float64) float64) Attribute {
	return Attribute{
		Type:       a.Type,
		Value:      MapValue(a.Value, f),
		Temporal:   a.Temporal,
		Provenance: a.Provenance,
	}
}

// WithClosedValidity returns a copy of a whose ValidUntil is set to until,
// used by AttributeUpdated's "close the old slice, append the new" semantics
// (spec.md §9 Open Question resolution, see DESIGN.md).
func (a Attribute) WithClosedValidity(until time.Time) Attribute {
	out := a
	out.Temporal.ValidUntil = &until
	return out
}
