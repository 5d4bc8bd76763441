package projection

import (
	"context"
	"fmt"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// Skills maintains the per-PersonId current skill list with proficiency
// and last-used date spec.md §4.10 calls for.
type Skills struct {
	queries db.Querier
}

func NewSkills(queries db.Querier) *Skills {
	return &Skills{queries: queries}
}

func (*Skills) Name() string { return "skills" }

func (s *Skills) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	e, ok := event.(person.SkillAdded)
	if !ok {
		return nil
	}
	if err := s.queries.UpsertSkill(ctx, db.Skill{
		PersonID:    e.PersonID().String(),
		InstanceID:  e.InstanceID,
		Name:        e.Name,
		Proficiency: e.Proficiency,
		LastUsed:    e.LastUsed,
	}); err != nil {
		return fmt.Errorf("skills: upsert: %w", err)
	}
	return nil
}
