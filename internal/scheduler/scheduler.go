// Package scheduler runs the engine's periodic maintenance jobs: a nightly
// snapshot-compaction sweep and an hourly DLQ-reprocessing sweep, on the
// same robfig/cron wrapper apps/notification-service uses for its tick
// publisher.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one piece of periodic maintenance work. Compaction and
// DLQ-reprocessing are both modeled this way so Scheduler stays agnostic
// of what it's running.
type Job struct {
	Name string
	Spec string // standard cron expression, e.g. "0 2 * * *"
	Run  func(ctx context.Context) error
}

// Scheduler wraps robfig/cron, running each registered Job's Run against a
// background context and logging failures without stopping the schedule.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// Register adds job to the schedule. Call before Start.
func (s *Scheduler) Register(ctx context.Context, job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() {
		if err := job.Run(ctx); err != nil {
			s.log.Error("scheduled job failed", zap.String("job", job.Name), zap.Error(err))
			return
		}
		s.log.Info("scheduled job completed", zap.String("job", job.Name))
	})
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop blocks until any in-flight job run completes.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// NightlySnapshotCompactionSpec runs once a day at 02:00, the same order of
// magnitude as an overnight batch window.
const NightlySnapshotCompactionSpec = "0 2 * * *"

// HourlyDeadLetterReprocessingSpec retries the DLQ once an hour.
const HourlyDeadLetterReprocessingSpec = "0 * * * *"
