package streaming

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// JetStreamDeadLetter publishes FailedEvent records to StreamPersonEventsDLQ
// and can reprocess them back onto their original subject, mirroring
// natsclient.Client.ProvisionStreams's create-if-missing pattern for the
// DLQ stream itself.
type JetStreamDeadLetter struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

func NewJetStreamDeadLetter(js nats.JetStreamContext, log *zap.Logger) *JetStreamDeadLetter {
	return &JetStreamDeadLetter{js: js, log: log}
}

// Provision idempotently ensures StreamPersonEventsDLQ exists.
func (d *JetStreamDeadLetter) Provision() error {
	cfg := DefaultDeadLetterConfig()
	_, err := d.js.StreamInfo(cfg.StreamName)
	if err == nil {
		return nil
	}
	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("dlq stream info: %w", err)
	}
	_, err = d.js.AddStream(&nats.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  cfg.Subjects,
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	})
	if err != nil {
		return fmt.Errorf("create dlq stream %s: %w", cfg.StreamName, err)
	}
	d.log.Info("dlq stream provisioned", zap.String("stream", cfg.StreamName))
	return nil
}

func (d *JetStreamDeadLetter) PublishFailed(ctx context.Context, event FailedEvent) error {
	data, err := EncodeFailedEvent(event)
	if err != nil {
		return err
	}
	subj := "dlq.person." + event.ConsumerName
	_, err = d.js.Publish(subj, data, nats.Context(ctx))
	return err
}

// Reprocess drains every message currently on the DLQ stream, republishing
// each FailedEvent's original payload back to OriginalSubject, then
// acknowledging it off the DLQ. It is meant to be called from a scheduled
// job (internal/scheduler's hourly sweep), not run continuously.
func (d *JetStreamDeadLetter) Reprocess(ctx context.Context) (int, error) {
	cfg := DefaultDeadLetterConfig()
	sub, err := d.js.SubscribeSync(cfg.Subjects[0], nats.DeliverAll(), nats.AckExplicit())
	if err != nil {
		return 0, err
	}
	defer sub.Unsubscribe()

	reprocessed := 0
	for {
		msg, err := sub.NextMsg(2 * time.Second)
		if err != nil {
			break
		}
		failed, err := DecodeFailedEvent(msg.Data)
		if err != nil {
			d.log.Error("failed to decode dlq entry, terminating", zap.Error(err))
			_ = msg.Term()
			continue
		}
		if _, err := d.js.Publish(failed.OriginalSubject, failed.Payload, nats.Context(ctx)); err != nil {
			d.log.Error("dlq reprocess republish failed", zap.String("subject", failed.OriginalSubject), zap.Error(err))
			_ = msg.Nak()
			continue
		}
		_ = msg.Ack()
		reprocessed++
	}
	return reprocessed, nil
}
