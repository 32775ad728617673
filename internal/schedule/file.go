package schedule

import (
	"context"
	"log"

	"animeschedule/internal/models"
)

// FileScheduleFetcher reads the schedule from a local JSON file.
// Used for local runs and tests without the upstream API.
type FileScheduleFetcher struct {
	FilePath string
}

func (f *FileScheduleFetcher) FetchSchedule(ctx context.Context) ([]models.ScheduleDay, error) {
	log.Printf("Reading schedule from file: %s", f.FilePath)

	days, err := FetchScheduleFromFile(f.FilePath)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, day := range days {
		total += len(day.AnimeList)
	}
	log.Printf("Found %d entries across %d days in file", total, len(days))

	return days, nil
}
