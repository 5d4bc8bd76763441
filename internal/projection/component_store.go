package projection

import (
	"context"
	"fmt"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// ComponentStore is the key/value side-table of spec.md §4.11, keyed by
// (person_id, component_type, instance_id), written only in response to
// the ComponentDataEvent variants. It is wired through the same
// Dispatcher as the other projections even though spec.md treats it as a
// distinct module, since both are pure event folds behind the same
// idempotent-apply contract.
type ComponentStore struct {
	queries db.Querier
}

func NewComponentStore(queries db.Querier) *ComponentStore {
	return &ComponentStore{queries: queries}
}

func (*ComponentStore) Name() string { return "component_store" }

func (c *ComponentStore) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	var componentType, instanceID string

	switch event.(type) {
	case person.EmailAdded, person.EmailUpdated:
		componentType = string(person.ComponentEmail)
	case person.PhoneAdded:
		componentType = string(person.ComponentPhone)
	case person.SkillAdded:
		componentType = string(person.ComponentSkill)
	case person.EmploymentAdded:
		componentType = string(person.ComponentEmployment)
	case person.AddressAdded:
		componentType = string(person.ComponentAddress)
	default:
		return nil
	}

	switch e := event.(type) {
	case person.EmailAdded:
		instanceID = e.InstanceID
	case person.EmailUpdated:
		instanceID = e.InstanceID
	case person.PhoneAdded:
		instanceID = e.InstanceID
	case person.SkillAdded:
		instanceID = e.InstanceID
	case person.EmploymentAdded:
		instanceID = e.InstanceID
	case person.AddressAdded:
		instanceID = e.InstanceID
	}

	payload, err := person.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("component_store: encode payload: %w", err)
	}

	if err := c.queries.UpsertComponent(ctx, db.ComponentRow{
		PersonID:      event.PersonID().String(),
		ComponentType: componentType,
		InstanceID:    instanceID,
		Payload:       payload,
		UpdatedAt:     event.OccurredAt(),
	}); err != nil {
		return fmt.Errorf("component_store: upsert: %w", err)
	}
	return nil
}
