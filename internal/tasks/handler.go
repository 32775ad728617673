package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"animeschedule/config"
	"animeschedule/internal/livewatch"
	"animeschedule/internal/models"
	"animeschedule/internal/notification"
	"animeschedule/internal/schedule"
	"animeschedule/internal/services"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer abstracts the ability to enqueue tasks, enabling test mocking.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NotificationSink is a per-task notifier that is closed when the task ends.
type NotificationSink interface {
	services.Notifier
	Close() error
}

// ReminderHandler processes anime reminder tasks from the Redis queue.
type ReminderHandler struct {
	cfg         *config.Config
	enqueuer    TaskEnqueuer
	fetcher     schedule.ScheduleFetcher
	newNotifier func(shouldNotify bool) NotificationSink
	now         func() time.Time
}

func NewReminderHandler(cfg *config.Config, enqueuer TaskEnqueuer, fetcher schedule.ScheduleFetcher) *ReminderHandler {
	return &ReminderHandler{
		cfg:      cfg,
		enqueuer: enqueuer,
		fetcher:  fetcher,
		newNotifier: func(shouldNotify bool) NotificationSink {
			return notification.NewServiceWithNotificationFlag(cfg, shouldNotify)
		},
		now: time.Now,
	}
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := ParseReminderPayload(t)
	if err != nil {
		return fmt.Errorf("failed to parse task payload: %w", err)
	}

	log.Printf("Processing reminder for %s", payload.Reminder.AnimeID)

	now := h.now()

	// Check execution window
	skip, err := services.ShouldSkipExecution(payload, now)
	if err != nil {
		return fmt.Errorf("error checking execution window: %w", err)
	}
	if skip {
		log.Printf("Execution window expired for %s, task complete.", payload.Reminder.AnimeID)
		return nil
	}

	notifier := h.newNotifier(payload.NotifyEnabled())
	defer notifier.Close()

	processor := &services.ReminderProcessor{
		Fetcher:  h.fetcher,
		Notifier: notifier,
		Location: h.cfg.Location(),
	}

	result, err := processor.Process(ctx, payload, now)
	if err != nil {
		return fmt.Errorf("failed to process reminder for %s: %w", payload.Reminder.AnimeID, err)
	}

	if result.ShouldReschedule {
		if err := h.scheduleNextCheck(payload); err != nil {
			return fmt.Errorf("failed to schedule next check for %s: %w", payload.Reminder.AnimeID, err)
		}
	}

	return nil
}

func (h *ReminderHandler) scheduleNextCheck(payload models.Payload) error {
	task, err := NewReminderTask(payload)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	interval := h.cfg.MessageInterval()
	info, err := h.enqueuer.Enqueue(task, asynq.ProcessIn(interval))
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("Scheduled next check for %s, task ID: %s, processing in: %v",
		payload.Reminder.AnimeID, info.ID, interval)
	return nil
}

// LiveChecker is satisfied by *livewatch.Watcher.
type LiveChecker interface {
	Check(ctx context.Context, now time.Time) (*livewatch.Report, error)
}

// LiveCheckHandler runs one live check per periodic task.
type LiveCheckHandler struct {
	checker LiveChecker
	now     func() time.Time
}

func NewLiveCheckHandler(checker LiveChecker) *LiveCheckHandler {
	return &LiveCheckHandler{checker: checker, now: time.Now}
}

func (h *LiveCheckHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	report, err := h.checker.Check(ctx, h.now())
	if err != nil {
		return err
	}
	log.Printf("Live check task complete: %d live on %s", report.Stats.LiveNow, report.Day)
	return nil
}
