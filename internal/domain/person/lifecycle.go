package person

import "time"

// LifecycleState tags which variant of Lifecycle is active.
type LifecycleState string

const (
	LifecycleActive      LifecycleState = "active"
	LifecycleDeactivated LifecycleState = "deactivated"
	LifecycleDeceased    LifecycleState = "deceased"
	LifecycleMergedInto  LifecycleState = "merged_into"
)

// Lifecycle is the PersonLifecycle sum type of spec.md §3. Fields outside
// the active variant are the zero value.
type Lifecycle struct {
	State LifecycleState

	// Deactivated
	DeactivationReason string
	DeactivatedSince   time.Time

	// Deceased
	DateOfDeath time.Time

	// MergedInto
	MergeTarget ID
	MergedAt    time.Time
}

// Active is the initial lifecycle a created person starts in. It is not the
// zero Lifecycle: an empty State marks an aggregate that does not exist yet.
func Active() Lifecycle { return Lifecycle{State: LifecycleActive} }

// IsTerminal reports whether the lifecycle is Deceased or MergedInto —
// no further state-changing command is accepted on a terminal lifecycle.
func (l Lifecycle) IsTerminal() bool {
	return l.State == LifecycleDeceased || l.State == LifecycleMergedInto
}

func (l Lifecycle) IsActive() bool      { return l.State == LifecycleActive }
func (l Lifecycle) IsDeactivated() bool { return l.State == LifecycleDeactivated }
