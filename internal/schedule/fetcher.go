package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"animeschedule/internal/models"
)

// ScheduleFetcher fetches the weekly release schedule.
type ScheduleFetcher interface {
	FetchSchedule(ctx context.Context) ([]models.ScheduleDay, error)
}

// ScheduleSource is the part of the API client the HTTP fetcher needs.
type ScheduleSource interface {
	Schedule(ctx context.Context) ([]models.ScheduleDay, error)
}

// HTTPScheduleFetcher fetches the schedule through the cached API client.
type HTTPScheduleFetcher struct {
	Source ScheduleSource
}

func (f *HTTPScheduleFetcher) FetchSchedule(ctx context.Context) ([]models.ScheduleDay, error) {
	days, err := f.Source.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	return days, nil
}

// NewScheduleFetcher creates the appropriate ScheduleFetcher based on configuration.
// If scheduleFile is non-empty, returns a file-based fetcher; otherwise returns an HTTP fetcher.
func NewScheduleFetcher(scheduleFile string, source ScheduleSource) ScheduleFetcher {
	if scheduleFile != "" {
		return &FileScheduleFetcher{FilePath: scheduleFile}
	}
	return &HTTPScheduleFetcher{Source: source}
}

// FetchScheduleFromFile reads a schedule from a JSON file. Both a bare
// {"days": [...]} payload and a full envelope are accepted.
func FetchScheduleFromFile(filePath string) ([]models.ScheduleDay, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file %s: %w", filePath, err)
	}

	var env models.Envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Status != "" {
		if !env.Succeeded() {
			return nil, fmt.Errorf("schedule file %s has status %q", filePath, env.Status)
		}
		var resp models.ScheduleResponse
		if err := env.DecodeData(&resp); err != nil {
			return nil, fmt.Errorf("failed to parse schedule file: %w", err)
		}
		return resp.Days, nil
	}

	var resp models.ScheduleResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}

	log.Printf("Loaded %d schedule days from %s", len(resp.Days), filePath)
	return resp.Days, nil
}
