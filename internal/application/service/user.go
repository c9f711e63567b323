package service

import (
	"context"

	"remindbot/internal/application/dto"
)

// UserService defines the interface for user registration logic.
type UserService interface {
	// Register completes registration with create-or-update semantics: the
	// first registration creates the user, later ones update the offset.
	Register(ctx context.Context, req dto.RegisterUserRequest) error
	// GetOffset returns the stored UTC offset for a registered user, or
	// ErrNotRegistered when the chat has never completed registration.
	GetOffset(ctx context.Context, chatID int64) (int, error)
}
