package queue

import (
	"context"
	"time"

	"animeschedule/internal/models"
)

// ReminderQueue is the interface for enqueuing anime reminder jobs.
// Implementations exist for Cloud Tasks and Redis via asynq.
type ReminderQueue interface {
	// Enqueue schedules a reminder job for delivery at the specified time.
	Enqueue(ctx context.Context, payload models.Payload, deliverAt time.Time) error
	Close() error
}
