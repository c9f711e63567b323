package repository

import (
	"context"

	"remindbot/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByChatID retrieves a user by their Telegram chat ID.
	FindByChatID(ctx context.Context, chatID int64) (*entity.User, error)
	// Upsert creates the user or updates the stored offset if the user exists.
	Upsert(ctx context.Context, user *entity.User) error
}
