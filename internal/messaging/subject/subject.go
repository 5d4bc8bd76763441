// Package subject implements the dot-joined NATS subject algebra used to
// address every event, command, and query this engine publishes. The shape
// is root.domain.aggregate[.scope].operation[.entity_id], e.g.
// "events.person.person.created.<id>"; wildcard subjects use "*" for a
// single token and ">" for the tail.
package subject

import "strings"

// Root is the top-level subject category.
type Root string

const (
	RootEvents   Root = "events"
	RootCommands Root = "commands"
	RootQueries  Root = "queries"
)

// Aggregate names the sub-domain a subject addresses.
type Aggregate string

const (
	AggregatePerson      Aggregate = "person"
	AggregateIdentity    Aggregate = "identity"
	AggregateEmployment  Aggregate = "employment"
	AggregateSkills      Aggregate = "skills"
	AggregateNetwork     Aggregate = "network"
	AggregatePreferences Aggregate = "preferences"
	AggregateDemographics Aggregate = "demographics"
	AggregateContact     Aggregate = "contact"
)

// Scope hierarchically narrows a subject beyond its aggregate. ScopeGlobal
// renders as no token at all, matching the wire format's omission of an
// empty scope segment.
type Scope struct {
	Kind string // "" (global) | "user" | "org" | "team" | "region" | "dept"
	ID   string
}

var ScopeGlobal = Scope{}

func ScopeUser(id string) Scope       { return Scope{Kind: "user", ID: id} }
func ScopeOrg(id string) Scope        { return Scope{Kind: "org", ID: id} }
func ScopeTeam(id string) Scope       { return Scope{Kind: "team", ID: id} }
func ScopeRegion(id string) Scope     { return Scope{Kind: "region", ID: id} }
func ScopeDepartment(id string) Scope { return Scope{Kind: "dept", ID: id} }

func (s Scope) isGlobal() bool { return s.Kind == "" }

func (s Scope) token() string {
	if s.isGlobal() {
		return ""
	}
	return s.Kind + "." + s.ID
}

// Subject is the PersonSubject wire address.
type Subject struct {
	Namespace string // "" when unset
	Root      Root
	Domain    string // always "person" for this engine, kept explicit for clarity
	Aggregate Aggregate
	Scope     Scope
	Operation string // "" when unset
	EntityID  string // "" when unset
}

// New returns a zero-configured events/person/person/global subject, mirroring
// PersonSubject::new in the original source.
func New() Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: AggregatePerson}
}

// Event builds an event subject: events.person.<aggregate>.<eventType>.<entityID>.
func Event(aggregate Aggregate, eventType, entityID string) Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: aggregate, Operation: eventType, EntityID: entityID}
}

// Command builds a command subject: commands.person.<aggregate>.<commandType>.<entityID>.
func Command(aggregate Aggregate, commandType, entityID string) Subject {
	return Subject{Root: RootCommands, Domain: "person", Aggregate: aggregate, Operation: commandType, EntityID: entityID}
}

// Query builds a query subject: queries.person.<aggregate>.<queryType>, with no entity id.
func Query(aggregate Aggregate, queryType string) Subject {
	return Subject{Root: RootQueries, Domain: "person", Aggregate: aggregate, Operation: queryType}
}

// EventsWildcard subscribes to every event of aggregate: events.person.<aggregate>.*.>
func EventsWildcard(aggregate Aggregate) Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: aggregate, Operation: "*", EntityID: ">"}
}

// CommandsWildcard subscribes to every command of aggregate.
func CommandsWildcard(aggregate Aggregate) Subject {
	return Subject{Root: RootCommands, Domain: "person", Aggregate: aggregate, Operation: "*", EntityID: "*"}
}

// UserEvent, OrgEvent, TeamEvent build scoped event subjects.
func UserEvent(userID string, aggregate Aggregate, eventType, entityID string) Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: aggregate, Scope: ScopeUser(userID), Operation: eventType, EntityID: entityID}
}

func OrgEvent(orgID string, aggregate Aggregate, eventType, entityID string) Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: aggregate, Scope: ScopeOrg(orgID), Operation: eventType, EntityID: entityID}
}

func TeamEvent(teamID string, aggregate Aggregate, eventType, entityID string) Subject {
	return Subject{Root: RootEvents, Domain: "person", Aggregate: aggregate, Scope: ScopeTeam(teamID), Operation: eventType, EntityID: entityID}
}

// WithNamespace, WithScope, WithOperation, WithEntityID are fluent setters
// mirroring PersonSubjectBuilder.
func (s Subject) WithNamespace(ns string) Subject   { s.Namespace = ns; return s }
func (s Subject) WithScope(scope Scope) Subject     { s.Scope = scope; return s }
func (s Subject) WithOperation(op string) Subject   { s.Operation = op; return s }
func (s Subject) WithEntityID(id string) Subject    { s.EntityID = id; return s }

// String renders the dot-joined subject: namespace?.root.domain.aggregate.scope?.operation?.entity_id?
func (s Subject) String() string {
	parts := make([]string, 0, 7)
	if s.Namespace != "" {
		parts = append(parts, s.Namespace)
	}
	parts = append(parts, string(s.Root), s.Domain, string(s.Aggregate))
	if !s.Scope.isGlobal() {
		parts = append(parts, s.Scope.token())
	}
	if s.Operation != "" {
		parts = append(parts, s.Operation)
	}
	if s.EntityID != "" {
		parts = append(parts, s.EntityID)
	}
	return strings.Join(parts, ".")
}
