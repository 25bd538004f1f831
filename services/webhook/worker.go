// File: services/webhook/worker.go
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"reservekit/config"
	outboxRepo "reservekit/database/repository/outbox"
	providerRepo "reservekit/database/repository/provider"
	"reservekit/models"
	"reservekit/utils"
)

// Worker consumes delivery tasks and POSTs outbox events to provider
// webhook endpoints.
type Worker struct {
	Outbox    outboxRepo.OutboxRepository
	Providers providerRepo.ProviderRepository
	HTTP      *http.Client

	server *asynq.Server
}

func NewWorker(outbox outboxRepo.OutboxRepository, providers providerRepo.ProviderRepository) *Worker {
	return &Worker{
		Outbox:    outbox,
		Providers: providers,
		HTTP: &http.Client{
			Timeout: time.Duration(config.AppConfig.WebhookTimeoutSec) * time.Second,
		},
	}
}

// Start runs the asynq consumer in the background.
func (w *Worker) Start() {
	w.server = asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisWebhookDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWebhookDeliver, w.handleDeliver)

	go func() {
		if err := w.server.Run(mux); err != nil {
			utils.GetLogger().Fatal("webhook worker failed to start", zap.Error(err))
		}
	}()
}

func (w *Worker) Shutdown() {
	if w.server != nil {
		w.server.Shutdown()
	}
}

func (w *Worker) handleDeliver(ctx context.Context, task *asynq.Task) error {
	var p DeliverPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		utils.GetLogger().Error("invalid webhook task payload", zap.Error(err))
		return nil
	}

	event, err := w.Outbox.GetByID(ctx, p.EventID)
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", p.EventID, err)
	}
	if event.Status == models.EventStatusDelivered {
		return nil
	}

	provider, err := w.Providers.GetByID(ctx, event.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to load provider %s: %w", event.ProviderID, err)
	}
	// Providers without a webhook endpoint opt out of delivery entirely.
	if provider.WebhookURL == "" {
		return w.Outbox.MarkDelivered(ctx, event.ID)
	}

	if err := w.Outbox.IncrementAttempts(ctx, event.ID); err != nil {
		utils.GetLogger().Warn("failed to bump delivery attempts",
			zap.String("event_id", event.ID), zap.Error(err))
	}

	if err := w.post(ctx, provider.WebhookURL, event); err != nil {
		if event.Attempts+1 >= config.AppConfig.WebhookMaxRetries {
			utils.GetLogger().Error("webhook delivery exhausted retries",
				zap.String("event_id", event.ID),
				zap.String("provider_id", provider.ID),
				zap.Error(err))
			if mfErr := w.Outbox.MarkFailed(ctx, event.ID); mfErr != nil {
				return mfErr
			}
			return nil
		}
		return err
	}

	return w.Outbox.MarkDelivered(ctx, event.ID)
}

func (w *Worker) post(ctx context.Context, url string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}
	return nil
}
