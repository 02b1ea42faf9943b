package reports

import (
	"context"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

const (
	MsgFetchFailed    = "Failed to fetch report"
	MsgAnalysisFailed = "Analysis failed"
	MsgAnalysisDone   = "Analysis complete!"
)

// Notification is a short user-facing message about the outcome of an action.
type Notification struct {
	Level   Level
	Message string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier emits notifications as structured log events.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) {
	logger := zerolog.Ctx(ctx)
	event := logger.Info()
	if n.Level == LevelError {
		event = logger.Warn()
	}
	event.Str("level_hint", string(n.Level)).Msg(n.Message)
}

// Collector keeps notifications in memory, in the order they were sent.
type Collector struct {
	Notifications []Notification
}

func (c *Collector) Notify(_ context.Context, n Notification) {
	c.Notifications = append(c.Notifications, n)
}

// Last returns the most recent notification.
func (c *Collector) Last() (Notification, bool) {
	if len(c.Notifications) == 0 {
		return Notification{}, false
	}
	return c.Notifications[len(c.Notifications)-1], true
}
