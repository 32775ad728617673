package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"animeschedule/internal/models"
	"animeschedule/internal/notification"
	"animeschedule/internal/schedule"
)

// Notifier is what the processor announces through. *notification.Service
// satisfies it.
type Notifier interface {
	Notify(req notification.NotificationRequest)
}

// ReminderProcessor contains the shared reminder logic used by both the HTTP
// handler and the asynq worker handler. It is stateless and safe for concurrent use.
type ReminderProcessor struct {
	Fetcher  schedule.ScheduleFetcher
	Notifier Notifier
	Location *time.Location
}

type ReminderStatus string

const (
	StatusNotified ReminderStatus = "notified"
	StatusPending  ReminderStatus = "pending"
	StatusMissing  ReminderStatus = "missing"
)

// ProcessResult holds the outcome of processing a reminder.
type ProcessResult struct {
	ShouldReschedule bool
	Status           ReminderStatus
	Display          schedule.Display
}

// ShouldSkipExecution returns true if now is past the execution end window.
func ShouldSkipExecution(payload models.Payload, now time.Time) (bool, error) {
	if payload.ExecutionEnd != nil {
		executionEnd, err := time.Parse(time.RFC3339, *payload.ExecutionEnd)
		if err != nil {
			return true, fmt.Errorf("invalid execution_end format: %w", err)
		}
		if now.After(executionEnd) {
			log.Printf("Current time is after execution end (%s). Skipping execution.", executionEnd.Format(time.RFC3339))
			return true, nil
		}
	} else {
		log.Println("Max execution time not set, proceeding without time check.")
	}
	return false, nil
}

// Process re-reads the schedule and decides whether the reminded episode is
// on air. An entry that is live, already aired, or whose countdown has run
// out is announced; an entry still counting down is rescheduled; an entry no
// longer on its day's list ends the reminder.
func (p *ReminderProcessor) Process(ctx context.Context, payload models.Payload, now time.Time) (ProcessResult, error) {
	days, err := p.Fetcher.FetchSchedule(ctx)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)

	bucket, ok := schedule.ParseDayBucket(payload.Reminder.Day)
	if !ok {
		bucket = schedule.BucketForWeekday(local.Weekday())
	}

	entry, found := findEntry(schedule.EntriesFor(days, bucket), payload.Reminder.AnimeID)
	if !found {
		log.Printf("Anime %s no longer listed on %s, ending reminder", payload.Reminder.AnimeID, bucket)
		return ProcessResult{Status: StatusMissing}, nil
	}

	est := schedule.ParseEstimation(entry.Estimation)
	display := schedule.FormatEstimate(est, local)

	onAir := display.IsLive || display.IsUpdate || (est.Kind == schedule.EstimateParsed && est.Until() == 0)
	if !onAir {
		log.Printf("Anime %s not on air yet (%s), should reschedule", entry.AnimeID, display.TimeText)
		return ProcessResult{ShouldReschedule: true, Status: StatusPending, Display: display}, nil
	}

	if p.Notifier != nil && payload.NotifyEnabled() {
		p.Notifier.Notify(notification.NotificationRequest{
			Kind:     notification.KindReminder,
			AnimeID:  entry.AnimeID,
			Title:    entry.Title,
			TimeText: display.TimeText,
			Day:      bucket.DisplayName(),
			Data: map[string]string{
				"genres": strings.Join(entry.Genres, ", "),
				"score":  entry.Score.String(),
			},
		})
	}
	log.Printf("Reminder for %s sent (%s)", entry.AnimeID, display.TimeText)

	return ProcessResult{Status: StatusNotified, Display: display}, nil
}

func findEntry(entries []models.ScheduleEntry, animeID string) (models.ScheduleEntry, bool) {
	for _, e := range entries {
		if e.AnimeID == animeID {
			return e, true
		}
	}
	return models.ScheduleEntry{}, false
}
