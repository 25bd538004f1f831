// File: services/webhook/sweeper.go
package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"reservekit/config"
	outboxRepo "reservekit/database/repository/outbox"
	"reservekit/utils"
)

const (
	sweepInterval = time.Minute
	sweepBatch    = 100
)

// Sweeper periodically re-enqueues pending outbox events whose delivery task
// was lost, typically a crash between the commit and the enqueue.
type Sweeper struct {
	Outbox outboxRepo.OutboxRepository

	client *asynq.Client
	stop   chan struct{}
}

func NewSweeper(outbox outboxRepo.OutboxRepository) *Sweeper {
	return &Sweeper{
		Outbox: outbox,
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisWebhookDB,
		}),
		stop: make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Sweeper) Shutdown() {
	close(s.stop)
	if err := s.client.Close(); err != nil {
		utils.GetLogger().Warn("failed to close sweeper client", zap.Error(err))
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, err := s.Outbox.ListPending(ctx, sweepBatch)
	if err != nil {
		utils.GetLogger().Warn("outbox sweep failed", zap.Error(err))
		return
	}

	for _, event := range events {
		task, err := NewDeliverTask(event.ID)
		if err != nil {
			utils.GetLogger().Error("failed to build sweep task",
				zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		opts := []asynq.Option{
			asynq.MaxRetry(config.AppConfig.WebhookMaxRetries),
			asynq.TaskID(event.ID),
		}
		_, err = s.client.EnqueueContext(ctx, task, opts...)
		// A task id conflict means the event is already queued or running.
		if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			utils.GetLogger().Warn("failed to re-enqueue pending event",
				zap.String("event_id", event.ID), zap.Error(err))
		}
	}
}
