// File: services/webhook/notifier.go
package webhook

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"reservekit/config"
	"reservekit/utils"
)

// AsynqNotifier enqueues delivery tasks for committed outbox events. Enqueue
// failures are logged and swallowed: the event row is already durable and the
// sweeper re-enqueues anything still pending.
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier() *AsynqNotifier {
	return &AsynqNotifier{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisWebhookDB,
		}),
	}
}

func (n *AsynqNotifier) Notify(ctx context.Context, eventID string) {
	task, err := NewDeliverTask(eventID)
	if err != nil {
		utils.GetLogger().Error("failed to build webhook task",
			zap.String("event_id", eventID), zap.Error(err))
		return
	}
	opts := []asynq.Option{
		asynq.MaxRetry(config.AppConfig.WebhookMaxRetries),
		asynq.TaskID(eventID),
	}
	if _, err := n.client.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue webhook delivery, sweeper will retry",
			zap.String("event_id", eventID), zap.Error(err))
	}
}

func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
