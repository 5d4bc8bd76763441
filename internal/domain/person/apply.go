package person

// Apply is the pure state-transition function of spec.md §4.1: it never
// fails on an event that Decide itself produced, and it monotonically bumps
// Version on every call. Envelope metadata is not part of Event and so
// plays no role here.
func Apply(state Person, event Event) Person {
	next := state
	next.Version = state.Version + 1

	switch e := event.(type) {
	case PersonCreated:
		next.ID = e.ID_
		next.CoreIdentity.LegalName = e.LegalName
		next.Lifecycle = Active()
		if next.Components == nil {
			next.Components = NewComponentSet()
		}
	case NameUpdated:
		next.CoreIdentity.LegalName = e.NewName
	case BirthDateSet:
		bd := e.BirthDate
		next.CoreIdentity.BirthDate = &bd
	case AttributeRecorded:
		next.Attributes = state.Attributes.With(e.Attribute)
	case AttributeUpdated:
		closed := e.ClosedAt
		next.Attributes = state.Attributes.Replace(
			func(a Attribute) bool {
				return a.Type == e.AttributeType && a.Temporal.ValidUntil == nil
			},
			func(a Attribute) Attribute { return a.WithClosedValidity(closed) },
		)
		next.Attributes = next.Attributes.With(e.NewAttribute)
	case AttributeInvalidated:
		invalidated := e.InvalidatedAt
		next.Attributes = state.Attributes.Replace(
			func(a Attribute) bool {
				return a.Type == e.AttributeType && a.Temporal.ValidUntil == nil
			},
			func(a Attribute) Attribute { return a.WithClosedValidity(invalidated) },
		)
	case ComponentRegistered:
		next.Components = state.Components.With(e.Component)
	case ComponentUnregistered:
		next.Components = state.Components.Without(e.Component)
	case PersonDeactivated:
		next.Lifecycle = Lifecycle{State: LifecycleDeactivated, DeactivationReason: e.Reason, DeactivatedSince: e.Since}
	case PersonReactivated:
		next.Lifecycle = Active()
	case DeathRecorded:
		next.Lifecycle = Lifecycle{State: LifecycleDeceased, DateOfDeath: e.DateOfDeath}
	case PersonMergedInto:
		next.Lifecycle = Lifecycle{State: LifecycleMergedInto, MergeTarget: e.Target, MergedAt: e.OccurredAt_}
	case EmailAdded, EmailUpdated, PhoneAdded, SkillAdded, EmploymentAdded, AddressAdded:
		// Component payload events leave the aggregate's state unchanged
		// (Version aside); the payload itself is owned by the component
		// store (spec.md §4.11) and applied there, not here.
	}

	return next
}

// Replay folds a sequence of events over the empty aggregate. The first
// event must be PersonCreated.
func Replay(events []Event) (Person, error) {
	return ReplayFrom(Empty(), events)
}

// ReplayFrom folds events onto an existing state, used for snapshot + tail
// replay in the repository (spec.md §4.5).
func ReplayFrom(state Person, events []Event) (Person, error) {
	if state.Lifecycle.State == "" {
		if len(events) == 0 {
			return state, nil
		}
		if _, ok := events[0].(PersonCreated); !ok {
			return state, errFirstEventNotCreated
		}
	}
	for _, e := range events {
		state = Apply(state, e)
	}
	return state, nil
}

var errFirstEventNotCreated = replayError{}

type replayError struct{}

func (replayError) Error() string { return "first event in a fresh replay must be PersonCreated" }
