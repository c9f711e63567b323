package sqlite

import (
	"context"
	"errors"
	"fmt"

	"remindbot/internal/domain/entity"
	"remindbot/internal/domain/repository"
	appErrors "remindbot/internal/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByChatID retrieves a user by their Telegram chat ID. A missing row
// surfaces as ErrUserNotFound.
func (r *userRepository) FindByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "chat_id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: chat %d", appErrors.ErrUserNotFound, chatID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find user by chat id %d: %w", chatID, err)
	}
	return &user, nil
}

// Upsert creates the user or updates the stored offset if the user exists.
// Re-registration has create-or-update semantics.
func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"offset_hours"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to upsert user %d: %w", user.ChatID, err)
	}
	return nil
}
