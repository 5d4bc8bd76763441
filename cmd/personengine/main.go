// Command personengine runs the Person domain's write side (Command
// Processor), reactive side (Policy Engine), and read side (Projection
// Dispatcher) as one long-lived process subscribed to the event bus. It
// has no HTTP or gRPC surface of its own — that, along with the CLI that
// turns operator commands into bus messages, is an external collaborator
// per spec.md's scope boundary.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arc-self/person-engine/internal/bus"
	"github.com/arc-self/person-engine/internal/command"
	"github.com/arc-self/person-engine/internal/config"
	"github.com/arc-self/person-engine/internal/domain/person"
	"github.com/arc-self/person-engine/internal/eventstore"
	"github.com/arc-self/person-engine/internal/messaging/envelope"
	"github.com/arc-self/person-engine/internal/messaging/subject"
	"github.com/arc-self/person-engine/internal/policy"
	"github.com/arc-self/person-engine/internal/projection"
	"github.com/arc-self/person-engine/internal/projection/db"
	"github.com/arc-self/person-engine/internal/repository"
	"github.com/arc-self/person-engine/internal/scheduler"
	"github.com/arc-self/person-engine/internal/snapshot"
	"github.com/arc-self/person-engine/internal/streaming"
	"github.com/arc-self/person-engine/internal/telemetry"
	"github.com/arc-self/person-engine/internal/versioning"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	if cfg.VaultAddress != "" {
		secrets, err := config.NewSecretManager(cfg.VaultAddress, cfg.VaultToken)
		if err != nil {
			logger.Fatal("vault connection failed", zap.Error(err))
		}
		if err := config.OverlaySecrets(&cfg, secrets); err != nil {
			logger.Fatal("vault secret overlay failed", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEndpoint != "" {
		tp, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("otel tracer init failed", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
		mp, err := telemetry.InitMeterProvider(ctx, cfg.ServiceName, cfg.OTelEndpoint)
		if err != nil {
			logger.Error("otel meter init failed", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	busClient, err := bus.NewClient(cfg.NATSURL, logger)
	if err != nil {
		logger.Fatal("bus connection failed", zap.Error(err))
	}
	defer busClient.Close()

	codec := eventstore.NewMigratingCodec(versioning.DefaultRegistry())
	eventStore := eventstore.NewJetStream(busClient.JS, codec, logger)
	if err := eventStore.ProvisionStream(); err != nil {
		logger.Fatal("event stream provisioning failed", zap.Error(err))
	}

	snapshotStore, err := snapshot.NewJetStream(busClient.JS, logger)
	if err != nil {
		logger.Fatal("snapshot bucket provisioning failed", zap.Error(err))
	}

	deadLetter := streaming.NewJetStreamDeadLetter(busClient.JS, logger)
	if err := deadLetter.Provision(); err != nil {
		logger.Fatal("dead-letter stream provisioning failed", zap.Error(err))
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to parse postgres dsn", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	queries := db.NewPGXQuerier(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to parse redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	idempotency := projection.NewIdempotencyStore(redisClient)

	repo := repository.New(eventStore, snapshotStore, cfg.SnapshotFrequency, time.Now)

	breaker := streaming.NewCircuitBreakerWithSuccessThreshold("jetstream-publish", cfg.CircuitFailureThreshold, cfg.CircuitSuccessThreshold, cfg.CircuitResetTimeout)
	publisher := streaming.NewJetStreamPublisher(busClient.JS, streaming.DefaultRetryPolicy(), breaker, deadLetter, logger)
	processor := command.NewProcessor(repo, publisher, logger)

	policyEngine := policy.NewEngine(logger,
		policy.OnboardingPolicy{},
		policy.AttributeConfidencePolicy{},
		policy.MergeCascadePolicy{},
	)

	dispatcher := projection.NewDispatcher(idempotency,
		func(projectionName string, err error) {
			logger.Error("projection failed", zap.String("projection", projectionName), zap.Error(err))
		},
		projection.NewSummary(queries),
		projection.NewSearch(queries),
		projection.NewSkills(queries),
		projection.NewNetwork(queries),
		projection.NewTimeline(queries),
		projection.NewComponentStore(queries),
	)

	sched := scheduler.New(logger)
	if err := sched.Register(ctx, scheduler.NewDeadLetterReprocessingJob(deadLetter)); err != nil {
		logger.Fatal("failed to register dlq reprocessing job", zap.Error(err))
	}
	if err := sched.Register(ctx, scheduler.NewSnapshotCompactionJob(repo, listActiveAggregateIDs(queries))); err != nil {
		logger.Fatal("failed to register snapshot compaction job", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	logger.Info("person-engine started", zap.String("nats", cfg.NATSURL))

	if err := eventStore.Subscribe(ctx, reactToStoredEvent(ctx, logger, policyEngine, processor, dispatcher, publisher)); err != nil && ctx.Err() == nil {
		logger.Error("event subscription ended unexpectedly", zap.Error(err))
	}

	logger.Info("person-engine shutting down")
}

// reactToStoredEvent closes the feedback loop spec.md §4.9 describes: every
// event replayed off the store is fanned out to the projections, and any
// follow-up commands the policy engine derives from it are handed straight
// back to the command processor in-process (the "in-process queue"
// alternative to re-publishing onto the command subject the spec allows).
func reactToStoredEvent(ctx context.Context, logger *zap.Logger, policyEngine *policy.Engine, processor *command.Processor, dispatcher *projection.Dispatcher, publisher command.Publisher) func(eventstore.StoredEvent) error {
	return func(se eventstore.StoredEvent) error {
		now := time.Now()

		msgID, err := envelope.ParseMessageID(se.MessageID)
		if err != nil {
			msgID = envelope.NewMessageID()
		}
		identity := envelope.Identity{
			MessageID:     msgID,
			CorrelationID: envelope.NewCorrelationID(),
			CausationID:   envelope.CausationFromMessage(msgID),
			Timestamp:     se.RecordedAt,
			Actor:         envelope.ActorSystem("person-engine"),
			Metadata:      map[string]string{},
		}
		env := envelope.Envelope{Identity: identity, Type: se.EventType}

		dispatcher.Dispatch(ctx, env, se.Event)

		policyActor := envelope.ActorSystem("policy:" + se.EventType)
		for _, cmd := range policyEngine.Evaluate(se.Event, now) {
			causation := identity.CausedBy(now)
			if _, err := processor.Handle(ctx, policyActor, causation, cmd); err != nil {
				logger.Error("policy-emitted command failed",
					zap.String("command_type", cmd.CommandType()),
					zap.String("person_id", cmd.PersonID().String()),
					zap.Error(err),
				)
				publishPolicyFailure(ctx, logger, publisher, causation, cmd, err, now)
			}
		}
		return nil
	}
}

// publishPolicyFailure surfaces a policy-emitted command that the aggregate
// rejected as its own event, per spec.md §4.9 — the engine does not retry
// it, but a dropped command must still be observable on the bus rather than
// only in logs.
func publishPolicyFailure(ctx context.Context, logger *zap.Logger, publisher command.Publisher, causation envelope.Identity, cmd person.Command, cause error, now time.Time) {
	payload, encErr := policy.EncodeFailure(policy.Failure{
		CommandType: cmd.CommandType(),
		PersonID:    cmd.PersonID().String(),
		Reason:      cause.Error(),
		FailedAt:    now,
	})
	if encErr != nil {
		logger.Error("failed to encode policy failure", zap.Error(encErr))
		return
	}

	subj := subject.Event(subject.AggregatePerson, "policy_failure", cmd.PersonID().String()).String()
	id := causation.CausedBy(now)
	id.Actor = envelope.ActorSystem("policy-engine")
	env := envelope.Envelope{Identity: id, Subject: subj, Type: "PolicyFailure", Payload: payload}
	if err := publisher.Publish(ctx, subj, env); err != nil {
		logger.Error("failed to publish policy failure", zap.String("subject", subj), zap.Error(err))
	}
}

func listActiveAggregateIDs(queries db.Querier) scheduler.ActiveAggregateIDs {
	return func(ctx context.Context) ([]person.ID, error) {
		raw, err := queries.ListActivePersonIDs(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]person.ID, 0, len(raw))
		for _, s := range raw {
			id, err := person.ParseID(s)
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
		return ids, nil
	}
}
