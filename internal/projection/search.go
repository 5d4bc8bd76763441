package projection

import (
	"context"
	"fmt"
	"strings"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// Search maintains a tokenized name/email/phone/organization index,
// re-indexing a person's name tokens whenever it changes.
type Search struct {
	queries db.Querier
}

func NewSearch(queries db.Querier) *Search {
	return &Search{queries: queries}
}

func (*Search) Name() string { return "search" }

func (s *Search) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	personID := event.PersonID().String()

	switch e := event.(type) {
	case person.PersonCreated:
		return s.indexTokens(ctx, personID, "name", e.LegalName.String())
	case person.NameUpdated:
		if err := s.queries.DeleteSearchEntriesForField(ctx, personID, "name"); err != nil {
			return fmt.Errorf("search: clear stale name tokens: %w", err)
		}
		return s.indexTokens(ctx, personID, "name", e.NewName.String())
	case person.EmailAdded:
		return s.indexTokens(ctx, personID, "email", e.Address)
	case person.PhoneAdded:
		return s.indexTokens(ctx, personID, "phone", e.Number)
	case person.EmploymentAdded:
		return s.indexTokens(ctx, personID, "organization", e.Organization)
	default:
		return nil
	}
}

func (s *Search) indexTokens(ctx context.Context, personID, field, text string) error {
	for _, token := range tokenize(text) {
		if err := s.queries.UpsertSearchEntry(ctx, db.SearchEntry{PersonID: personID, Token: token, Field: field}); err != nil {
			return fmt.Errorf("search: index token %q: %w", token, err)
		}
	}
	return nil
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
