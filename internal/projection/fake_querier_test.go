package projection_test

import (
	"context"
	"sync"

	"github.com/arc-self/person-engine/internal/projection/db"
)

// fakeQuerier is an in-memory db.Querier double, kept in the teacher's own
// style of hand-written test fakes (see eventstore.InMemory) rather than a
// generated mock, since every method here is a couple of map operations.
type fakeQuerier struct {
	mu         sync.Mutex
	summaries  map[string]db.PersonSummary
	search     []db.SearchEntry
	skills     map[string]db.Skill
	edges      map[string]db.NetworkEdge
	timeline   []db.TimelineEntry
	components map[string]db.ComponentRow
}

var _ db.Querier = (*fakeQuerier)(nil)

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		summaries:  make(map[string]db.PersonSummary),
		skills:     make(map[string]db.Skill),
		edges:      make(map[string]db.NetworkEdge),
		components: make(map[string]db.ComponentRow),
	}
}

func (f *fakeQuerier) UpsertSummary(ctx context.Context, row db.PersonSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries[row.PersonID] = row
	return nil
}

func (f *fakeQuerier) GetSummary(ctx context.Context, personID string) (db.PersonSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.summaries[personID]
	if !ok {
		return db.PersonSummary{}, db.ErrNotFound
	}
	return row, nil
}

func (f *fakeQuerier) ListActivePersonIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, row := range f.summaries {
		if row.Active {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeQuerier) UpsertSearchEntry(ctx context.Context, row db.SearchEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.search {
		if existing == row {
			return nil
		}
	}
	f.search = append(f.search, row)
	return nil
}

func (f *fakeQuerier) DeleteSearchEntriesForField(ctx context.Context, personID, field string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.search[:0]
	for _, e := range f.search {
		if e.PersonID == personID && e.Field == field {
			continue
		}
		kept = append(kept, e)
	}
	f.search = kept
	return nil
}

func (f *fakeQuerier) SearchByToken(ctx context.Context, token string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, e := range f.search {
		if e.Token == token {
			ids = append(ids, e.PersonID)
		}
	}
	return ids, nil
}

func (f *fakeQuerier) UpsertSkill(ctx context.Context, row db.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skills[row.PersonID+"/"+row.InstanceID] = row
	return nil
}

func (f *fakeQuerier) ListSkills(ctx context.Context, personID string) ([]db.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Skill
	for _, s := range f.skills {
		if s.PersonID == personID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeQuerier) UpsertNetworkEdge(ctx context.Context, row db.NetworkEdge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edges[row.PersonID+"/"+row.PeerID+"/"+row.Relation] = row
	return nil
}

func (f *fakeQuerier) ListNetworkEdges(ctx context.Context, personID string) ([]db.NetworkEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.NetworkEdge
	for _, e := range f.edges {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeQuerier) AppendTimelineEntry(ctx context.Context, row db.TimelineEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeline = append(f.timeline, row)
	return nil
}

func (f *fakeQuerier) ListTimeline(ctx context.Context, personID string) ([]db.TimelineEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.TimelineEntry
	for _, e := range f.timeline {
		if e.PersonID == personID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeQuerier) UpsertComponent(ctx context.Context, row db.ComponentRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.components[row.PersonID+"/"+row.ComponentType+"/"+row.InstanceID] = row
	return nil
}

func (f *fakeQuerier) GetComponent(ctx context.Context, personID, componentType, instanceID string) (db.ComponentRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.components[personID+"/"+componentType+"/"+instanceID]
	if !ok {
		return db.ComponentRow{}, db.ErrNotFound
	}
	return row, nil
}
