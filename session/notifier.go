package session

import "log/slog"

// Notifier surfaces transient user-facing notices: login feedback, logout
// confirmation, and the "logged out" notice after credential rejection.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// slogNotifier is the default Notifier, routing notices to the logger.
type slogNotifier struct {
	logger *slog.Logger
}

func (n slogNotifier) Success(msg string) {
	n.logger.Info(msg)
}

func (n slogNotifier) Error(msg string) {
	n.logger.Warn(msg)
}

func (n slogNotifier) Info(msg string) {
	n.logger.Info(msg)
}
