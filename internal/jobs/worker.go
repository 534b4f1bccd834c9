package jobs

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/roomverse/platform/internal/auth"
)

// Worker wraps the asynq server processing background tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger zerolog.Logger
}

// NewWorker constructs a Worker with the touch handler registered.
func NewWorker(redisOpts asynq.RedisClientOpt, touch *TouchHandler, logger zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeTouchAPIKey, touch.Handle)

	return &Worker{server: srv, mux: mux, logger: logger}
}

// Run processes tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Client submits tasks to the queue.
type Client struct {
	client *asynq.Client
	logger zerolog.Logger
}

// NewClient constructs an asynq client.
func NewClient(redisOpts asynq.RedisClientOpt, logger zerolog.Logger) *Client {
	return &Client{client: asynq.NewClient(redisOpts), logger: logger}
}

// TouchFunc adapts the client into the credential validator's
// fire-and-forget hook. Enqueue failures are logged and dropped:
// a missed last-used update never blocks or fails a request.
func (c *Client) TouchFunc() auth.TouchFunc {
	return func(apiKeyID string) {
		task, err := NewTouchAPIKeyTask(TouchAPIKeyPayload{KeyID: apiKeyID})
		if err != nil {
			c.logger.Warn().Err(err).Msg("build touch task")
			return
		}
		if _, err := c.client.Enqueue(task, asynq.Queue(QueueDefault)); err != nil {
			c.logger.Warn().Err(err).Str("api_key_id", apiKeyID).Msg("enqueue touch task")
		}
	}
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
