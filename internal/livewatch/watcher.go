// Package livewatch periodically re-resolves today's schedule and announces
// episodes that have entered their broadcast window.
package livewatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"animeschedule/internal/notification"
	"animeschedule/internal/schedule"
)

const DefaultInterval = 60 * time.Second

// OptIn reports the persisted notification preference. Refresh is called
// before every check so a preference changed by another process is seen.
// *state.Manager satisfies it.
type OptIn interface {
	Refresh(ctx context.Context) error
	Notifications() bool
}

type Notifier interface {
	Notify(req notification.NotificationRequest)
}

type Report struct {
	Day      schedule.DayBucket       `json:"day"`
	Stats    schedule.DayStats        `json:"stats"`
	Live     []schedule.ResolvedEntry `json:"live"`
	Notified []string                 `json:"notified"`
	At       time.Time                `json:"at"`
}

type Watcher struct {
	fetcher  schedule.ScheduleFetcher
	optIn    OptIn
	notifier Notifier
	location *time.Location
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	date     string
	notified map[string]struct{}
	last     *Report
}

type Options struct {
	Location *time.Location
	Interval time.Duration
	Now      func() time.Time
}

func NewWatcher(fetcher schedule.ScheduleFetcher, optIn OptIn, notifier Notifier, opts Options) *Watcher {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Watcher{
		fetcher:  fetcher,
		optIn:    optIn,
		notifier: notifier,
		location: opts.Location,
		interval: opts.Interval,
		now:      opts.Now,
		notified: make(map[string]struct{}),
	}
}

// Check resolves today's bucket at now. Each anime is announced at most once
// per local date, and only while the opt-in is set.
func (w *Watcher) Check(ctx context.Context, now time.Time) (*Report, error) {
	days, err := w.fetcher.FetchSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("live check failed: %w", err)
	}

	if w.optIn != nil {
		if err := w.optIn.Refresh(ctx); err != nil {
			log.Printf("Using last known notification preference: %v", err)
		}
	}

	local := now.In(w.location)
	bucket := schedule.BucketForWeekday(local.Weekday())
	entries, stats := schedule.ResolveDay(schedule.EntriesFor(days, bucket), local)

	report := &Report{Day: bucket, Stats: stats, At: now, Live: []schedule.ResolvedEntry{}, Notified: []string{}}
	for _, e := range entries {
		if e.IsLive {
			report.Live = append(report.Live, e)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	date := local.Format(time.DateOnly)
	if date != w.date {
		w.date = date
		w.notified = make(map[string]struct{})
	}

	if w.notifier != nil && w.optIn != nil && w.optIn.Notifications() {
		for _, e := range report.Live {
			if _, done := w.notified[e.AnimeID]; done {
				continue
			}
			w.notified[e.AnimeID] = struct{}{}
			report.Notified = append(report.Notified, e.AnimeID)

			w.notifier.Notify(notification.NotificationRequest{
				Kind:     notification.KindLive,
				AnimeID:  e.AnimeID,
				Title:    e.Title,
				TimeText: e.TimeText,
				Day:      bucket.DisplayName(),
				Data: map[string]string{
					"genres": strings.Join(e.Genres, ", "),
					"score":  e.Score.String(),
				},
			})
		}
	}

	log.Printf("Live check for %s: %d episodes, %d live, %d notified",
		bucket, stats.TotalEpisodes, stats.LiveNow, len(report.Notified))

	w.last = report
	return report, nil
}

// Last returns the most recent report, or nil before the first check.
func (w *Watcher) Last() *Report {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Run checks immediately and then on every tick until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Live watcher started with interval %v", w.interval)
	for {
		if _, err := w.Check(ctx, w.now()); err != nil {
			log.Printf("Error: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Printf("Live watcher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
