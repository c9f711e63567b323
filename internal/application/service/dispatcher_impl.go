package service

import (
	"context"
	"fmt"
	"time"

	"remindbot/internal/domain/entity"
	"remindbot/internal/domain/repository"
	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"
)

type dispatcherService struct {
	reminderRepo repository.ReminderRepository
	notifier     Notifier
	log          logger.Logger
	now          func() time.Time
}

// NewDispatcherService creates a new instance of DispatcherService implementation.
func NewDispatcherService(
	reminderRepo repository.ReminderRepository,
	notifier Notifier,
	log logger.Logger,
) DispatcherService {
	return &dispatcherService{
		reminderRepo: reminderRepo,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

// Tick scans the store once and dispatches every due reminder.
//
// The order is send-then-delete: a reminder is removed only after Telegram
// accepted the message, so a crash or send failure can cause a duplicate but
// never a lost reminder (at-least-once, single instance). Per-reminder
// failures are isolated; one bad send never aborts the rest of the scan.
func (s *dispatcherService) Tick(ctx context.Context) error {
	reminders, err := s.reminderRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to fetch reminders for tick", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	now := s.now().UTC()
	sent := 0
	for _, reminder := range reminders {
		if reminder.RemindTime.After(now) {
			continue
		}

		if err := s.notifier.Send(ctx, reminder.ChatID, renderNotification(reminder)); err != nil {
			// Never surfaced to the user; the row stays and the next
			// tick retries.
			s.log.Error(fmt.Sprintf("Failed to send reminder %d to chat %d", reminder.ID, reminder.ChatID), err)
			continue
		}

		if err := s.reminderRepo.Delete(ctx, reminder.ID); err != nil {
			// The send went out but the row survived; it will be sent
			// again next tick. Acceptable under at-least-once.
			s.log.Error(fmt.Sprintf("Failed to delete reminder %d after delivery", reminder.ID), err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Info(fmt.Sprintf("Tick complete: delivered and deleted %d reminder(s)", sent))
	}
	return nil
}

func renderNotification(r *entity.Reminder) string {
	text := fmt.Sprintf("🔔 Reminder: <b>%s</b>", escapeHTML(r.Title))
	if r.Message != "" {
		text += "\n\n" + escapeHTML(r.Message)
	}
	return text
}
