// Package notify carries the user-visible toast notifications that the
// inventory layer raises on mutations and sync failures.
package notify

import "go.uber.org/zap"

// Notifier surfaces a short message to whoever is watching: connected
// dashboard sessions, logs, or both.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier writes notifications to the service log. It is the fallback
// when no websocket hub is running (tests, one-off tooling).
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(title, message string) {
	n.logger.Info("notification", zap.String("title", title), zap.String("message", message))
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(title, message string) {
	for _, n := range m {
		n.Notify(title, message)
	}
}
