// Package db is the Postgres read-model layer for internal/projection,
// hand-written in the sqlc-generated idiom apps/abc-service/internal/
// repository/db is imported under (a Querier interface plus plain row
// structs, consumed by a service/projection layer that never touches
// *pgxpool.Pool directly).
package db

import "time"

// PersonSummary is the Summary projection's row (spec.md §4.10).
type PersonSummary struct {
	PersonID        string
	DisplayName     string
	PrimaryEmail    string
	PrimaryPhone    string
	ComponentCount  int32
	SkillCount      int32
	RelationshipCount int32
	Active          bool
	UpdatedAt       time.Time
}

// SearchEntry is one tokenized row in the Search projection's index.
type SearchEntry struct {
	PersonID string
	Token    string
	Field    string
}

// Skill is one row of the Skills projection.
type Skill struct {
	PersonID    string
	InstanceID  string
	Name        string
	Proficiency string
	LastUsed    *time.Time
}

// NetworkEdge is one adjacency row of the Network projection.
type NetworkEdge struct {
	PersonID   string
	PeerID     string
	Relation   string
	Degree     int32
}

// TimelineEntry is one audit row of the Timeline projection.
type TimelineEntry struct {
	PersonID    string
	Sequence    uint64
	EventType   string
	OccurredAt  time.Time
	Description string
}

// ComponentRow is one row of the component_data side-table (spec.md §4.11).
type ComponentRow struct {
	PersonID      string
	ComponentType string
	InstanceID    string
	Payload       []byte
	UpdatedAt     time.Time
}
