// Package policy implements spec.md §4.9: an ordered list of pure
// event-to-commands functions, evaluated concurrently for one inbound event
// and concatenated back in registration order.
package policy

import (
	"time"

	"github.com/sourcegraph/conc"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/domain/person"
)

// Policy is the pure evaluate(event) -> []Command function of spec.md §4.9.
// Implementations must not perform I/O or consult anything beyond the event
// payload; a policy that panics is caught and logged by Engine.Evaluate,
// not propagated to sibling policies.
type Policy interface {
	Name() string
	Evaluate(event person.Event, now time.Time) []person.Command
}

// Engine holds an ordered list of policies. Engine.Evaluate runs them
// concurrently via a panic-safe conc.WaitGroup and concatenates their
// outputs in registration order, preserving the ordering semantics of
// spec.md §4.9 while parallelizing evaluation itself.
type Engine struct {
	policies []Policy
	log      *zap.Logger
}

func NewEngine(log *zap.Logger, policies ...Policy) *Engine {
	return &Engine{policies: policies, log: log}
}

// Evaluate runs every registered policy against event and returns their
// concatenated commands in registration order. A policy that panics is
// logged and contributes no commands; it never blocks its siblings.
func (e *Engine) Evaluate(event person.Event, now time.Time) []person.Command {
	results := make([][]person.Command, len(e.policies))

	var wg conc.WaitGroup
	for i, p := range e.policies {
		i, p := i, p
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					e.log.Error("policy panicked, skipping",
						zap.String("policy", p.Name()),
						zap.Any("recovered", r),
					)
				}
			}()
			results[i] = p.Evaluate(event, now)
		})
	}
	wg.Wait()

	var out []person.Command
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// Failure is the "policy failure" event spec.md §4.9 requires when a
// policy-emitted command fails validation in the aggregate it targets: the
// engine surfaces it rather than retrying, since a generated command that
// the aggregate itself rejects is not a transient fault.
type Failure struct {
	CommandType string
	PersonID    string
	Reason      string
	FailedAt    time.Time
}

// EncodeFailure msgpack-encodes a Failure for the wire, matching this
// engine's compact binary payload convention (spec.md §6).
func EncodeFailure(f Failure) ([]byte, error) {
	return msgpack.Marshal(f)
}
