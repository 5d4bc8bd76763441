package db

import "context"

// Querier is the read-model persistence seam every projection depends on,
// following apps/abc-service/internal/service/item_service.go's pattern of
// a service talking to an interface rather than a concrete *pgxpool.Pool —
// here hand-written since no sqlc-generated package ships in this repo.
type Querier interface {
	UpsertSummary(ctx context.Context, row PersonSummary) error
	GetSummary(ctx context.Context, personID string) (PersonSummary, error)
	// ListActivePersonIDs returns every person_id with an active summary
	// row, the source the nightly snapshot-compaction sweep uses to find
	// which aggregates to visit.
	ListActivePersonIDs(ctx context.Context) ([]string, error)

	UpsertSearchEntry(ctx context.Context, row SearchEntry) error
	DeleteSearchEntriesForField(ctx context.Context, personID, field string) error
	SearchByToken(ctx context.Context, token string) ([]string, error)

	UpsertSkill(ctx context.Context, row Skill) error
	ListSkills(ctx context.Context, personID string) ([]Skill, error)

	UpsertNetworkEdge(ctx context.Context, row NetworkEdge) error
	ListNetworkEdges(ctx context.Context, personID string) ([]NetworkEdge, error)

	AppendTimelineEntry(ctx context.Context, row TimelineEntry) error
	ListTimeline(ctx context.Context, personID string) ([]TimelineEntry, error)

	UpsertComponent(ctx context.Context, row ComponentRow) error
	GetComponent(ctx context.Context, personID, componentType, instanceID string) (ComponentRow, error)
}
