package projection

import (
	"context"
	"fmt"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// Summary maintains the per-PersonId read model spec.md §4.10 describes:
// display name, primary contact info, component and skill counts, and the
// active/deactivated flag. The row's RelationshipCount column is carried
// but no event handled here changes it, so it stays 0.
type Summary struct {
	queries db.Querier
}

func NewSummary(queries db.Querier) *Summary {
	return &Summary{queries: queries}
}

func (*Summary) Name() string { return "summary" }

func (s *Summary) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	personID := event.PersonID().String()

	existing, err := s.queries.GetSummary(ctx, personID)
	if err != nil && err != db.ErrNotFound {
		return fmt.Errorf("summary: load existing: %w", err)
	}
	if err == db.ErrNotFound {
		existing = db.PersonSummary{PersonID: personID, Active: true}
	}

	switch e := event.(type) {
	case person.PersonCreated:
		existing.DisplayName = e.LegalName.String()
		existing.Active = true
	case person.NameUpdated:
		existing.DisplayName = e.NewName.String()
	case person.ComponentRegistered:
		existing.ComponentCount++
	case person.ComponentUnregistered:
		if existing.ComponentCount > 0 {
			existing.ComponentCount--
		}
	case person.EmailAdded:
		if e.IsPrimary {
			existing.PrimaryEmail = e.Address
		}
	case person.EmailUpdated:
		if e.IsPrimary {
			existing.PrimaryEmail = e.Address
		}
	case person.PhoneAdded:
		if e.IsPrimary {
			existing.PrimaryPhone = e.Number
		}
	case person.SkillAdded:
		existing.SkillCount++
	case person.PersonDeactivated:
		existing.Active = false
	case person.PersonReactivated:
		existing.Active = true
	case person.DeathRecorded:
		existing.Active = false
	default:
		return nil
	}

	existing.UpdatedAt = event.OccurredAt()
	return s.queries.UpsertSummary(ctx, existing)
}
