package policy

import (
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// OnboardingPolicy reacts to PersonCreated by registering the Identity
// component, grounded on the original source's pure_event_driven_demo.rs
// reactive chain (create a person, then immediately attach its identity
// component as a follow-up command rather than folding it into creation).
type OnboardingPolicy struct{}

func (OnboardingPolicy) Name() string { return "OnboardingPolicy" }

func (OnboardingPolicy) Evaluate(event person.Event, now time.Time) []person.Command {
	created, ok := event.(person.PersonCreated)
	if !ok {
		return nil
	}
	return []person.Command{person.NewRegisterComponent(created.PersonID(), person.ComponentIdentity, now)}
}

// AttributeConfidencePolicy reacts to an AttributeRecorded event carrying
// Uncertain confidence. It currently emits no follow-up command: flagging a
// low-confidence attribute for re-verification is left to a downstream
// projection/workflow, not the aggregate core, so this policy exists to
// exercise the "policies may legitimately produce zero commands" path
// spec.md §4.9 allows rather than to drive any aggregate mutation today.
type AttributeConfidencePolicy struct{}

func (AttributeConfidencePolicy) Name() string { return "AttributeConfidencePolicy" }

func (AttributeConfidencePolicy) Evaluate(event person.Event, now time.Time) []person.Command {
	recorded, ok := event.(person.AttributeRecorded)
	if !ok {
		return nil
	}
	if recorded.Attribute.Provenance.Confidence != person.ConfidenceUncertain {
		return nil
	}
	return nil
}

// MergeCascadePolicy reacts to PersonMergedInto by registering the Identity
// component on the merge target, standing in for a "notify the target of
// the merge" signal. Migrating the source's attribute/component payloads
// onto the target is an Open Question spec.md §9 leaves to projections, not
// this policy.
type MergeCascadePolicy struct{}

func (MergeCascadePolicy) Name() string { return "MergeCascadePolicy" }

func (MergeCascadePolicy) Evaluate(event person.Event, now time.Time) []person.Command {
	merged, ok := event.(person.PersonMergedInto)
	if !ok {
		return nil
	}
	return []person.Command{person.NewRegisterComponent(merged.Target, person.ComponentIdentity, now)}
}
