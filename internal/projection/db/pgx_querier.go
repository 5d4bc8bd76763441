package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound mirrors pgx.ErrNoRows for callers outside this package that
// should not need to import pgx just to compare errors.
var ErrNotFound = errors.New("db: row not found")

// PGXQuerier implements Querier against a live Postgres pool, following
// the hand-rolled-SQL-over-pgxpool idiom apps/cookie-scanner's main.go uses
// directly (this engine keeps the same pool but behind the Querier seam).
type PGXQuerier struct {
	pool *pgxpool.Pool
}

func NewPGXQuerier(pool *pgxpool.Pool) *PGXQuerier {
	return &PGXQuerier{pool: pool}
}

func (q *PGXQuerier) UpsertSummary(ctx context.Context, row PersonSummary) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO person_summary
			(person_id, display_name, primary_email, primary_phone, component_count, skill_count, relationship_count, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (person_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			primary_email = EXCLUDED.primary_email,
			primary_phone = EXCLUDED.primary_phone,
			component_count = EXCLUDED.component_count,
			skill_count = EXCLUDED.skill_count,
			relationship_count = EXCLUDED.relationship_count,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`, row.PersonID, row.DisplayName, row.PrimaryEmail, row.PrimaryPhone, row.ComponentCount, row.SkillCount, row.RelationshipCount, row.Active, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert person_summary: %w", err)
	}
	return nil
}

func (q *PGXQuerier) GetSummary(ctx context.Context, personID string) (PersonSummary, error) {
	var row PersonSummary
	err := q.pool.QueryRow(ctx, `
		SELECT person_id, display_name, primary_email, primary_phone, component_count, skill_count, relationship_count, active, updated_at
		FROM person_summary WHERE person_id = $1
	`, personID).Scan(&row.PersonID, &row.DisplayName, &row.PrimaryEmail, &row.PrimaryPhone, &row.ComponentCount, &row.SkillCount, &row.RelationshipCount, &row.Active, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PersonSummary{}, ErrNotFound
	}
	if err != nil {
		return PersonSummary{}, fmt.Errorf("get person_summary: %w", err)
	}
	return row, nil
}

func (q *PGXQuerier) ListActivePersonIDs(ctx context.Context) ([]string, error) {
	rows, err := q.pool.Query(ctx, `SELECT person_id FROM person_summary WHERE active = true`)
	if err != nil {
		return nil, fmt.Errorf("list active person_summary: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan person_summary row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (q *PGXQuerier) UpsertSearchEntry(ctx context.Context, row SearchEntry) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO search_index (person_id, token, field) VALUES ($1, $2, $3)
		ON CONFLICT (person_id, token, field) DO NOTHING
	`, row.PersonID, row.Token, row.Field)
	if err != nil {
		return fmt.Errorf("upsert search_index: %w", err)
	}
	return nil
}

func (q *PGXQuerier) DeleteSearchEntriesForField(ctx context.Context, personID, field string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM search_index WHERE person_id = $1 AND field = $2`, personID, field)
	if err != nil {
		return fmt.Errorf("delete search_index: %w", err)
	}
	return nil
}

func (q *PGXQuerier) SearchByToken(ctx context.Context, token string) ([]string, error) {
	rows, err := q.pool.Query(ctx, `SELECT DISTINCT person_id FROM search_index WHERE token = $1`, token)
	if err != nil {
		return nil, fmt.Errorf("search_index by token: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan search_index row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (q *PGXQuerier) UpsertSkill(ctx context.Context, row Skill) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO person_skill (person_id, instance_id, name, proficiency, last_used)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_id, instance_id) DO UPDATE SET
			name = EXCLUDED.name, proficiency = EXCLUDED.proficiency, last_used = EXCLUDED.last_used
	`, row.PersonID, row.InstanceID, row.Name, row.Proficiency, row.LastUsed)
	if err != nil {
		return fmt.Errorf("upsert person_skill: %w", err)
	}
	return nil
}

func (q *PGXQuerier) ListSkills(ctx context.Context, personID string) ([]Skill, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT person_id, instance_id, name, proficiency, last_used FROM person_skill WHERE person_id = $1
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("list person_skill: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.PersonID, &s.InstanceID, &s.Name, &s.Proficiency, &s.LastUsed); err != nil {
			return nil, fmt.Errorf("scan person_skill row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (q *PGXQuerier) UpsertNetworkEdge(ctx context.Context, row NetworkEdge) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO person_network_edge (person_id, peer_id, relation, degree)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (person_id, peer_id, relation) DO UPDATE SET degree = EXCLUDED.degree
	`, row.PersonID, row.PeerID, row.Relation, row.Degree)
	if err != nil {
		return fmt.Errorf("upsert person_network_edge: %w", err)
	}
	return nil
}

func (q *PGXQuerier) ListNetworkEdges(ctx context.Context, personID string) ([]NetworkEdge, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT person_id, peer_id, relation, degree FROM person_network_edge WHERE person_id = $1
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("list person_network_edge: %w", err)
	}
	defer rows.Close()

	var out []NetworkEdge
	for rows.Next() {
		var e NetworkEdge
		if err := rows.Scan(&e.PersonID, &e.PeerID, &e.Relation, &e.Degree); err != nil {
			return nil, fmt.Errorf("scan person_network_edge row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (q *PGXQuerier) AppendTimelineEntry(ctx context.Context, row TimelineEntry) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO person_timeline (person_id, sequence, event_type, occurred_at, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_id, sequence) DO NOTHING
	`, row.PersonID, row.Sequence, row.EventType, row.OccurredAt, row.Description)
	if err != nil {
		return fmt.Errorf("append person_timeline: %w", err)
	}
	return nil
}

func (q *PGXQuerier) ListTimeline(ctx context.Context, personID string) ([]TimelineEntry, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT person_id, sequence, event_type, occurred_at, description
		FROM person_timeline WHERE person_id = $1 ORDER BY sequence ASC
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("list person_timeline: %w", err)
	}
	defer rows.Close()

	var out []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		if err := rows.Scan(&e.PersonID, &e.Sequence, &e.EventType, &e.OccurredAt, &e.Description); err != nil {
			return nil, fmt.Errorf("scan person_timeline row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (q *PGXQuerier) UpsertComponent(ctx context.Context, row ComponentRow) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO component_data (person_id, component_type, instance_id, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (person_id, component_type, instance_id) DO UPDATE SET
			payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, row.PersonID, row.ComponentType, row.InstanceID, row.Payload, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert component_data: %w", err)
	}
	return nil
}

func (q *PGXQuerier) GetComponent(ctx context.Context, personID, componentType, instanceID string) (ComponentRow, error) {
	var row ComponentRow
	err := q.pool.QueryRow(ctx, `
		SELECT person_id, component_type, instance_id, payload, updated_at FROM component_data
		WHERE person_id = $1 AND component_type = $2 AND instance_id = $3
	`, personID, componentType, instanceID).Scan(&row.PersonID, &row.ComponentType, &row.InstanceID, &row.Payload, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ComponentRow{}, ErrNotFound
	}
	if err != nil {
		return ComponentRow{}, fmt.Errorf("get component_data: %w", err)
	}
	return row, nil
}
