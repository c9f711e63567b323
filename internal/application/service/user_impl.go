package service

import (
	"context"
	"errors"
	"fmt"

	"remindbot/internal/application/dto"
	"remindbot/internal/domain/entity"
	"remindbot/internal/domain/repository"
	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"
	"remindbot/internal/pkg/timeutil"
)

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// Register completes registration with create-or-update semantics.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) error {
	if !timeutil.ValidOffset(req.OffsetHours) {
		return fmt.Errorf("%w: %+d", appErrors.ErrInvalidOffset, req.OffsetHours)
	}

	user := &entity.User{
		ChatID:      req.ChatID,
		OffsetHours: req.OffsetHours,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to upsert user %d", req.ChatID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Registered chat %d at UTC%+d", req.ChatID, req.OffsetHours))
	return nil
}

// GetOffset returns the stored UTC offset for a registered user. A chat with
// no user row maps onto ErrNotRegistered, the gate every flow checks first.
func (s *userService) GetOffset(ctx context.Context, chatID int64) (int, error) {
	user, err := s.userRepo.FindByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return 0, fmt.Errorf("%w: chat %d", appErrors.ErrNotRegistered, chatID)
		}
		s.log.Error(fmt.Sprintf("Failed to get user %d", chatID), err)
		return 0, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return user.OffsetHours, nil
}
