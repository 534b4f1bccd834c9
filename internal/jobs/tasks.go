package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/roomverse/platform/internal/store"
)

const (
	// QueueDefault is the queue background tasks are submitted to.
	QueueDefault = "default"
	// TaskTypeTouchAPIKey records when an API key was last used.
	TaskTypeTouchAPIKey = "apikey:touch"
)

// TouchAPIKeyPayload identifies the key that was just used.
type TouchAPIKeyPayload struct {
	KeyID string `json:"key_id"`
}

// NewTouchAPIKeyTask constructs an Asynq task.
func NewTouchAPIKeyTask(payload TouchAPIKeyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeTouchAPIKey, data), nil
}

// TouchHandler processes TaskTypeTouchAPIKey tasks against the store.
type TouchHandler struct {
	store *store.Store
}

// NewTouchHandler constructs a TouchHandler.
func NewTouchHandler(st *store.Store) *TouchHandler {
	return &TouchHandler{store: st}
}

// Handle updates the key's last-used timestamp.
func (h *TouchHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload TouchAPIKeyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	return h.store.TouchAPIKeyLastUsed(ctx, payload.KeyID)
}
