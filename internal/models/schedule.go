package models

// ScheduleResponse is the data payload of /schedule.
type ScheduleResponse struct {
	Days []ScheduleDay `json:"days"`
}

// ScheduleDay holds one weekday's releases. Day is the English weekday name.
type ScheduleDay struct {
	Day       string          `json:"day"`
	AnimeList []ScheduleEntry `json:"animeList"`
}

// ScheduleEntry is a single scheduled release. Estimation is either the
// literal "Update" (already aired) or a "<d>d <h>h <m>m" countdown.
type ScheduleEntry struct {
	AnimeID    string     `json:"animeId"`
	Title      string     `json:"title"`
	Poster     string     `json:"poster"`
	Type       string     `json:"type"`
	Score      FlexString `json:"score"`
	Genres     Genres     `json:"genres"`
	Estimation string     `json:"estimation"`
}
