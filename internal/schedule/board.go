package schedule

import (
	"time"

	"animeschedule/internal/models"
)

// ResolvedEntry pairs a schedule entry with its computed display fields.
type ResolvedEntry struct {
	models.ScheduleEntry
	Display
}

type DayStats struct {
	TotalEpisodes int `json:"totalEpisodes"`
	LiveNow       int `json:"liveNow"`
}

type DayTab struct {
	ID     DayBucket `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// Board is the render-ready schedule view for one selected day.
type Board struct {
	Day         DayBucket       `json:"day"`
	DayName     string          `json:"dayName"`
	Tabs        []DayTab        `json:"tabs"`
	Entries     []ResolvedEntry `json:"entries"`
	Stats       DayStats        `json:"stats"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// ResolveDay resolves every entry against now and aggregates the counts.
func ResolveDay(entries []models.ScheduleEntry, now time.Time) ([]ResolvedEntry, DayStats) {
	resolved := make([]ResolvedEntry, 0, len(entries))
	stats := DayStats{TotalEpisodes: len(entries)}

	for _, entry := range entries {
		d := ResolveDisplay(entry, now)
		if d.IsLive {
			stats.LiveNow++
		}
		resolved = append(resolved, ResolvedEntry{ScheduleEntry: entry, Display: d})
	}
	return resolved, stats
}

// EntriesFor finds the upstream day matching bucket. Unknown day names are ignored.
func EntriesFor(days []models.ScheduleDay, bucket DayBucket) []models.ScheduleEntry {
	for _, day := range days {
		if d, ok := ParseDayBucket(day.Day); ok && d == bucket {
			return day.AnimeList
		}
	}
	return nil
}

func BuildBoard(days []models.ScheduleDay, selected DayBucket, now time.Time) Board {
	if !selected.Valid() {
		selected = SelectDay("", now)
	}

	tabs := make([]DayTab, 0, len(AllDays))
	for _, d := range AllDays {
		tabs = append(tabs, DayTab{ID: d, Name: d.DisplayName(), Active: d == selected})
	}

	entries, stats := ResolveDay(EntriesFor(days, selected), now)

	return Board{
		Day:         selected,
		DayName:     selected.DisplayName(),
		Tabs:        tabs,
		Entries:     entries,
		Stats:       stats,
		GeneratedAt: now,
	}
}
