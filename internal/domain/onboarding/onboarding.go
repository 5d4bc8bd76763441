// Package onboarding implements the onboarding workflow that accompanies a
// newly created Person: a separate, short-lived aggregate tracked by the
// generic transition-table state machine rather than its own Decide/Apply
// pair, since its lifecycle is a simple linear workflow with no bi-temporal
// or coalgebraic structure of its own.
package onboarding

import (
	"time"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/domainerr"
	"github.com/arc-self/person-engine/internal/statemachine"
)

// Stage is the workflow's state.
type Stage string

const (
	StageStarted           Stage = "started"
	StageBasicInfoProvided Stage = "basic_info_provided"
	StageComponentsAdded   Stage = "components_added"
	StageCompleted         Stage = "completed"
	StageCancelled         Stage = "cancelled"
)

// Trigger is the workflow's command alphabet.
type Trigger struct {
	Kind      string // "provide_basic_info" | "add_components" | "complete" | "cancel"
	Reason    string // only meaningful for Cancel
	Component person.ComponentType
}

// Workflow is the onboarding aggregate: a PersonID plus a Stage advanced by
// the shared transition table.
type Workflow struct {
	PersonID        person.ID
	Stage           Stage
	RequiredComponents person.ComponentSet
	SatisfiedComponents person.ComponentSet
	StartedAt       time.Time
	CompletedAt     time.Time
	CancelReason    string
}

func machine() *statemachine.Machine[Stage, Trigger] {
	return statemachine.New[Stage, Trigger](StageStarted).
		TransitionWithGuard(StageStarted, StageBasicInfoProvided, func(_ Stage, t Trigger) bool {
			return t.Kind == "provide_basic_info"
		}).
		TransitionWithGuard(StageBasicInfoProvided, StageComponentsAdded, func(_ Stage, t Trigger) bool {
			return t.Kind == "add_components"
		}).
		TransitionWithGuard(StageComponentsAdded, StageCompleted, func(_ Stage, t Trigger) bool {
			return t.Kind == "complete"
		}).
		TransitionWithGuard(StageStarted, StageCancelled, cancelGuard).
		TransitionWithGuard(StageBasicInfoProvided, StageCancelled, cancelGuard).
		TransitionWithGuard(StageComponentsAdded, StageCancelled, cancelGuard).
		Build()
}

func cancelGuard(_ Stage, t Trigger) bool { return t.Kind == "cancel" }

// Start creates a new onboarding workflow for id, requiring the given
// component types before completion is reachable.
func Start(id person.ID, required person.ComponentSet, now time.Time) Workflow {
	return Workflow{
		PersonID:            id,
		Stage:                StageStarted,
		RequiredComponents:   required.Clone(),
		SatisfiedComponents:  person.NewComponentSet(),
		StartedAt:            now,
	}
}

// Advance applies trigger t to the workflow using the shared transition
// table, and keeps the component-satisfaction bookkeeping used by the
// ComponentsAdded→Completed guard in sync.
func (w Workflow) Advance(t Trigger, now time.Time) (Workflow, error) {
	next := w
	if t.Kind == "add_components" {
		next.SatisfiedComponents = w.SatisfiedComponents.With(t.Component)
	}

	stage, err := machine().ValidateTransition(w.Stage, t)
	if err != nil {
		return w, domainerr.Validation("onboarding: %v", err)
	}

	if stage == StageCompleted && !next.allRequiredSatisfied() {
		return w, domainerr.Validation("onboarding: cannot complete, missing required components")
	}

	next.Stage = stage
	switch stage {
	case StageCompleted:
		next.CompletedAt = now
	case StageCancelled:
		next.CancelReason = t.Reason
	}
	return next, nil
}

func (w Workflow) allRequiredSatisfied() bool {
	for ct := range w.RequiredComponents {
		if !w.SatisfiedComponents.Has(ct) {
			return false
		}
	}
	return true
}

// IsTerminal reports whether no further trigger can advance the workflow.
func (w Workflow) IsTerminal() bool {
	return w.Stage == StageCompleted || w.Stage == StageCancelled
}
