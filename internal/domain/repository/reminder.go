package repository

import (
	"context"

	"remindbot/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder data operations.
// Every operation is independently atomic; callers do not get transactions
// across calls.
type ReminderRepository interface {
	// FindByID retrieves a reminder by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Reminder, error)
	// FindByChatID retrieves all reminders for a chat, ordered by remind_time ascending.
	FindByChatID(ctx context.Context, chatID int64) ([]*entity.Reminder, error)
	// FindAll retrieves every stored reminder (scanned by the dispatcher each tick).
	FindAll(ctx context.Context) ([]*entity.Reminder, error)
	// Create creates a new reminder. Returns the ID of the created reminder.
	Create(ctx context.Context, reminder *entity.Reminder) (uint, error)
	// Update updates an existing reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error
	// Delete deletes a reminder by its ID.
	Delete(ctx context.Context, id uint) error
}
