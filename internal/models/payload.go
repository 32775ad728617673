package models

// Reminder identifies the scheduled release a reminder job watches.
type Reminder struct {
	AnimeID string `json:"animeId"`
	Title   string `json:"title"`
	Day     string `json:"day"`
}

// Payload is the job body carried through Cloud Tasks and asynq.
type Payload struct {
	Reminder     Reminder `json:"reminder"`
	AiringAt     string   `json:"airing_at"`
	ExecutionEnd *string  `json:"execution_end,omitempty"`
	ShouldNotify *bool    `json:"should_notify,omitempty"`
}

// NotifyEnabled defaults to true when should_notify is absent.
func (p Payload) NotifyEnabled() bool {
	return p.ShouldNotify == nil || *p.ShouldNotify
}
