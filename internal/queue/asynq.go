package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"animeschedule/config"
	"animeschedule/internal/models"
	"animeschedule/internal/tasks"

	"github.com/hibiken/asynq"
)

// asynqClient is the subset of *asynq.Client the queue uses.
type asynqClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqQueue implements ReminderQueue on Redis. Reminders are keyed by
// anime and airing time so repeated scheduler runs do not duplicate them.
type AsynqQueue struct {
	client asynqClient
}

func NewAsynqQueue(cfg *config.Config) *AsynqQueue {
	client := asynq.NewClient(tasks.RedisOpt(cfg))
	return &AsynqQueue{client: client}
}

func (q *AsynqQueue) Enqueue(ctx context.Context, payload models.Payload, deliverAt time.Time) error {
	task, err := tasks.NewReminderTask(payload)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(deliverAt),
		asynq.TaskID(tasks.ReminderTaskID(payload)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Printf("Reminder for %s at %s already queued", payload.Reminder.AnimeID, payload.AiringAt)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	log.Printf("Enqueued reminder for %s (%s), task ID: %s, processing at %s",
		payload.Reminder.AnimeID, payload.Reminder.Title, info.ID, deliverAt.Format(time.RFC3339))
	return nil
}

func (q *AsynqQueue) Close() error {
	return q.client.Close()
}
