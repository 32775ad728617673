package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"animeschedule/internal/models"
	"animeschedule/internal/schedule"
)

// TaskEnqueuer is the interface used by the scheduler to enqueue reminder jobs.
// This is defined here (at the consumer) per Go convention. Concrete
// implementations live in the queue package (Cloud Tasks, asynq).
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, payload models.Payload, deliverAt time.Time) error
	Close() error
}

// Scheduler fetches the weekly schedule and enqueues one reminder per
// upcoming episode.
type Scheduler struct {
	fetcher      schedule.ScheduleFetcher
	queue        TaskEnqueuer
	window       time.Duration
	shouldNotify bool
}

// New creates a new Scheduler. window is how long after the projected airing
// time a reminder keeps checking before giving up.
func New(fetcher schedule.ScheduleFetcher, q TaskEnqueuer, window time.Duration, shouldNotify bool) *Scheduler {
	return &Scheduler{
		fetcher:      fetcher,
		queue:        q,
		window:       window,
		shouldNotify: shouldNotify,
	}
}

// Summary counts what a Run did.
type Summary struct {
	Total     int
	Scheduled int
	Skipped   int
	Failed    int
}

// Run fetches the schedule and enqueues a reminder at now plus each entry's
// countdown. Aired and malformed entries are skipped.
func (s *Scheduler) Run(ctx context.Context, now time.Time) (Summary, error) {
	log.Printf("Fetching schedule at %s", now.Format(time.RFC3339))

	days, err := s.fetcher.FetchSchedule(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	var summary Summary
	for _, day := range days {
		bucket, ok := schedule.ParseDayBucket(day.Day)
		if !ok {
			log.Printf("Skipping unknown schedule day %q", day.Day)
			summary.Total += len(day.AnimeList)
			summary.Skipped += len(day.AnimeList)
			continue
		}

		for _, entry := range day.AnimeList {
			summary.Total++

			est := schedule.ParseEstimation(entry.Estimation)
			if est.Kind != schedule.EstimateParsed {
				log.Printf("Skipping %s (%s) - estimation is %s", entry.AnimeID, entry.Title, est.Kind)
				summary.Skipped++
				continue
			}

			airingAt := now.Add(est.Until())
			executionEnd := airingAt.Add(s.window).Format(time.RFC3339)

			payload := models.Payload{
				Reminder: models.Reminder{
					AnimeID: entry.AnimeID,
					Title:   entry.Title,
					Day:     string(bucket),
				},
				AiringAt:     airingAt.Truncate(time.Minute).Format(time.RFC3339),
				ExecutionEnd: &executionEnd,
				ShouldNotify: &s.shouldNotify,
			}

			if err := s.queue.Enqueue(ctx, payload, airingAt); err != nil {
				log.Printf("Failed to enqueue reminder for %s: %v", entry.AnimeID, err)
				summary.Failed++
				continue
			}

			summary.Scheduled++
		}
	}

	log.Printf("Successfully scheduled %d/%d reminders", summary.Scheduled, summary.Total)
	return summary, nil
}
