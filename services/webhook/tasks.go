// File: services/webhook/tasks.go
package webhook

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeWebhookDeliver = "webhook:deliver"

// DeliverPayload carries only the outbox event id; the handler re-reads the
// event so retries always deliver the persisted state.
type DeliverPayload struct {
	EventID string `json:"event_id"`
}

func NewDeliverTask(eventID string) (*asynq.Task, error) {
	b, err := json.Marshal(DeliverPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWebhookDeliver, b), nil
}
