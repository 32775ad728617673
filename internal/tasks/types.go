package tasks

import (
	"encoding/json"
	"fmt"

	"animeschedule/internal/models"

	"github.com/hibiken/asynq"
)

const (
	TypeAnimeReminder     = "anime:reminder"
	TypeScheduleLiveCheck = "schedule:live_check"
)

// NewReminderTask creates a new asynq task from a reminder payload.
func NewReminderTask(payload models.Payload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeAnimeReminder, data), nil
}

// ParseReminderPayload deserializes a payload from an asynq task.
func ParseReminderPayload(t *asynq.Task) (models.Payload, error) {
	var payload models.Payload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return payload, nil
}

// ReminderTaskID is the dedup key of a reminder: one per anime per airing.
func ReminderTaskID(payload models.Payload) string {
	return fmt.Sprintf("reminder:%s:%s", payload.Reminder.AnimeID, payload.AiringAt)
}

// NewLiveCheckTask creates the periodic live check task. It carries no payload.
func NewLiveCheckTask() *asynq.Task {
	return asynq.NewTask(TypeScheduleLiveCheck, nil)
}
