package projection_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/projection"
)

type fakeClaimer struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func newFakeClaimer() *fakeClaimer { return &fakeClaimer{claimed: make(map[string]bool)} }

func (f *fakeClaimer) Claim(ctx context.Context, projectionName, messageID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := projectionName + "/" + messageID
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

type countingProjection struct {
	mu    sync.Mutex
	name  string
	calls int
	panic bool
}

func (p *countingProjection) Name() string { return p.name }

func (p *countingProjection) Apply(ctx context.Context, env envelope.Envelope, event person.Event) error {
	if p.panic {
		panic("boom")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return nil
}

func TestDispatchSkipsAlreadyClaimedMessage(t *testing.T) {
	claimer := newFakeClaimer()
	target := &countingProjection{name: "target"}
	errs := []error{}
	d := projection.NewDispatcher(claimer, func(name string, err error) { errs = append(errs, err) }, target)

	env := envelope.Envelope{Identity: envelope.NewIdentity(envelope.ActorSystem("test"), time.Now())}
	event := person.NewPersonCreated(person.NewID(), time.Now(), mustName(t))

	d.Dispatch(context.Background(), env, event)
	d.Dispatch(context.Background(), env, event)

	target.mu.Lock()
	defer target.mu.Unlock()
	assert.Equal(t, 1, target.calls)
}

func TestDispatchPanicInOneProjectionDoesNotBlockSiblings(t *testing.T) {
	claimer := newFakeClaimer()
	panicky := &countingProjection{name: "panicky", panic: true}
	healthy := &countingProjection{name: "healthy"}

	var reportedErrs int
	var mu sync.Mutex
	d := projection.NewDispatcher(claimer, func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		reportedErrs++
	}, panicky, healthy)

	env := envelope.Envelope{Identity: envelope.NewIdentity(envelope.ActorSystem("test"), time.Now())}
	event := person.NewPersonCreated(person.NewID(), time.Now(), mustName(t))

	d.Dispatch(context.Background(), env, event)

	healthy.mu.Lock()
	defer healthy.mu.Unlock()
	require.Equal(t, 1, healthy.calls)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, reportedErrs)
}
