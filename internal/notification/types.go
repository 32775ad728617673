package notification

import (
	"context"
	"time"
)

type NotificationResult struct {
	ID        string
	Success   bool
	Error     error
	Timestamp time.Time
}

type NotificationKind string

const (
	// KindLive is sent when a scheduled episode enters its broadcast window.
	KindLive NotificationKind = "live"
	// KindReminder is sent by the reminder jobs ahead of or at airing time.
	KindReminder NotificationKind = "reminder"
)

type NotificationRequest struct {
	Kind     NotificationKind
	AnimeID  string
	Title    string
	TimeText string
	Day      string
	Data     map[string]string
}

type Notifier interface {
	SendNotification(ctx context.Context, message string) (<-chan NotificationResult, error)
	FormatMessage(req NotificationRequest) string
	Close() error
}

type NotifierConfig struct {
	Config map[string]string
}
