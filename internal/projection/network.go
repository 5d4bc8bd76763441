package projection

import (
	"context"
	"fmt"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection/db"
)

// RelationMergedInto is the edge relation recorded when one aggregate
// merges into another, resolving spec.md §9's open question (see
// DESIGN.md) that projections follow the MergedInto pointer rather than
// the Component Store physically moving payloads.
const RelationMergedInto = "merged_into"

// Network maintains the adjacency-plus-degree-count read model spec.md
// §4.10 describes. PersonMergedInto is currently the only event that
// produces an edge; other relationship-producing events are out of scope
// for this engine's event set (SPEC_FULL.md §4 does not add any).
type Network struct {
	queries db.Querier
}

func NewNetwork(queries db.Querier) *Network {
	return &Network{queries: queries}
}

func (*Network) Name() string { return "network" }

func (n *Network) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	e, ok := event.(person.PersonMergedInto)
	if !ok {
		return nil
	}

	sourceID := e.PersonID().String()
	targetID := e.Target.String()

	sourceEdges, err := n.queries.ListNetworkEdges(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("network: load source edges: %w", err)
	}
	if err := n.queries.UpsertNetworkEdge(ctx, db.NetworkEdge{
		PersonID: sourceID, PeerID: targetID, Relation: RelationMergedInto, Degree: int32(len(sourceEdges) + 1),
	}); err != nil {
		return fmt.Errorf("network: upsert source edge: %w", err)
	}

	targetEdges, err := n.queries.ListNetworkEdges(ctx, targetID)
	if err != nil {
		return fmt.Errorf("network: load target edges: %w", err)
	}
	if err := n.queries.UpsertNetworkEdge(ctx, db.NetworkEdge{
		PersonID: targetID, PeerID: sourceID, Relation: RelationMergedInto, Degree: int32(len(targetEdges) + 1),
	}); err != nil {
		return fmt.Errorf("network: upsert target edge: %w", err)
	}
	return nil
}
