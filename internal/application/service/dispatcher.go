package service

import "context"

// Notifier delivers a text message to a user. Implementations must bound how
// long a send can block; a timeout is reported as an error and the reminder
// stays queued for the next tick.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// DispatcherService turns persisted due reminders into delivered
// notifications. It shares nothing with the conversation controller except
// the store; each store call is independently atomic.
type DispatcherService interface {
	// Tick scans the store once, sends every due reminder and deletes each
	// one whose send succeeded. Failed sends are left for the next tick.
	Tick(ctx context.Context) error
}
