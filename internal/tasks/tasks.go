package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/storage"
	"github.com/Anietiedaniel/stay-next-agent-service/internal/utils"
)

const (
	// TypeMediaCleanup removes remote storage objects whose URLs were
	// detached from a property (media delete, property delete).
	TypeMediaCleanup = "media:cleanup"
)

// IClient is the subset of asynq.Client the services need; it exists
// so handlers and services can be tested with a mock enqueuer.
type IClient interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewClient creates an asynq client off the shared Redis connection.
func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// MediaCleanupPayload lists storage URLs to destroy. Folder scopes the
// derived public ids; ResourceType is "image" or "video".
type MediaCleanupPayload struct {
	URLs         []string `json:"urls"`
	Folder       string   `json:"folder"`
	ResourceType string   `json:"resource_type"`
}

// EnqueueMediaCleanup schedules remote deletion of detached media.
// Cleanup is fire-and-forget from the request's point of view; asynq
// retries failed tasks.
func EnqueueMediaCleanup(client IClient, urls []string, folder, resourceType string) error {
	if len(urls) == 0 {
		return nil
	}
	payload, err := json.Marshal(MediaCleanupPayload{
		URLs:         urls,
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal media cleanup payload: %w", err)
	}
	_, err = client.Enqueue(asynq.NewTask(TypeMediaCleanup, payload), asynq.Queue("low"))
	if err != nil {
		return fmt.Errorf("failed to enqueue media cleanup: %w", err)
	}
	return nil
}

// TaskProcessor handles the processing of background tasks.
type TaskProcessor struct {
	cfg     *config.Config
	storage storage.Uploader
}

// NewTaskProcessor creates a new TaskProcessor.
func NewTaskProcessor(cfg *config.Config, uploader storage.Uploader) *TaskProcessor {
	return &TaskProcessor{cfg: cfg, storage: uploader}
}

// HandleMediaCleanupTask destroys the storage objects named by the
// payload. A failing URL fails the task so asynq retries the batch;
// already-deleted objects are treated as success by the storage layer.
func (p *TaskProcessor) HandleMediaCleanupTask(ctx context.Context, t *asynq.Task) error {
	var payload MediaCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid media cleanup payload: %w: %v", asynq.SkipRetry, err)
	}

	for _, url := range payload.URLs {
		publicID := utils.PublicIDFromURL(url, payload.Folder)
		if err := p.storage.Delete(ctx, publicID, payload.ResourceType); err != nil {
			log.Printf("WARN: media cleanup failed for %s (public id %s): %v", url, publicID, err)
			return err
		}
	}
	return nil
}

// SetupServer configures and returns an Asynq server instance.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) *asynq.Server {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("ERROR: task %s failed: %v", task.Type(), err)
			}),
		},
	)
	return srv
}

// NewMux returns the task router for the background worker.
func NewMux(processor *TaskProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMediaCleanup, processor.HandleMediaCleanupTask)
	return mux
}
