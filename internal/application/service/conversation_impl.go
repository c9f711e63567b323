package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"remindbot/internal/application/dto"
	"remindbot/internal/domain/constant"
	"remindbot/internal/domain/entity"
	"remindbot/internal/domain/repository"
	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"
	"remindbot/internal/pkg/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// keepCurrent is what the user sends to keep the existing value during the
// edit flow, or to leave the message empty during the create flow.
const keepCurrent = "-"

const (
	msgWelcome = "👋 Welcome to the Reminder Bot! Press /help to find out what this bot can do!"
	msgHelp    = "ℹ️ <b>Help Menu</b>\n\n" +
		"🚀 <b>/start</b> — Start interacting with the bot\n" +
		"🌍 <b>/register</b> — Pick your timezone (required once)\n" +
		"📋 <b>/list</b> — Show the current reminders\n" +
		"🔙 <b>/cancel</b> — Abort the current action\n" +
		"❓ <b>/help</b> — Show this help menu"
	msgNotRegistered  = "🌍 You need to register first. Press /register and pick your timezone."
	msgPickTimezone   = "🌍 Please select your time zone from the list (pick the option showing your current local time)."
	msgIdleHint       = "ℹ️ Use /list to manage your reminders or /help to see the commands."
	msgGenericFailure = "❗ Something went wrong. Please try again."
	msgCancelled      = "🔙 Cancelled."
	msgNoReminders    = "📋 Your reminders:\n\n🗒 You don't have any reminders yet."
	msgPromptTitle    = "📌 <b>Create a new reminder</b>\n\n📝 Enter the reminder name (1-20 characters)."
	msgTitleTooLong   = "❌ The reminder name must be 1-20 characters. Please enter a shorter name."
	msgPromptTime     = "⏰ Enter the time to receive the reminder. Example: <b>YYYY-MM-DD HH:MM</b>"
	msgBadTimeFormat  = "❌ Invalid time format. Please enter in format: <b>YYYY-MM-DD HH:MM</b>"
	msgPastTime       = "❌ That time has already passed in your timezone. Please enter a future time."
	msgPromptMessage  = "💬 Enter the reminder message, or send \"-\" to leave it empty."
	msgBadIndex       = "❌ Invalid number. Try again."
	msgReminderGone   = "❌ That reminder no longer exists."
	msgDeleted        = "✅ The reminder has been successfully removed."
	msgUpdated        = "✅ The reminder has been updated."
)

type conversationService struct {
	reminderRepo repository.ReminderRepository
	userSvc      UserService
	sessions     *SessionStore
	log          logger.Logger
	now          func() time.Time
}

// NewConversationService creates a new instance of ConversationService implementation.
func NewConversationService(
	reminderRepo repository.ReminderRepository,
	userSvc UserService,
	sessions *SessionStore,
	log logger.Logger,
) ConversationService {
	return &conversationService{
		reminderRepo: reminderRepo,
		userSvc:      userSvc,
		sessions:     sessions,
		log:          log,
		now:          time.Now,
	}
}

// Welcome renders the /start greeting.
func (s *conversationService) Welcome() dto.Reply {
	return dto.Reply{Text: msgWelcome}
}

// Help renders the /help command list.
func (s *conversationService) Help() dto.Reply {
	return dto.Reply{Text: msgHelp}
}

// StartRegistration presents the timezone choices.
func (s *conversationService) StartRegistration(ctx context.Context, chatID int64) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	// Registration replaces any flow in progress.
	s.sessions.Clear(chatID)
	return dto.Reply{Text: msgPickTimezone, Keyboard: dto.KeyboardTimezones}
}

// CompleteRegistration consumes a signed-integer offset choice.
func (s *conversationService) CompleteRegistration(ctx context.Context, chatID int64, offsetText string) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	offset, err := strconv.Atoi(strings.TrimSpace(offsetText))
	if err != nil || !timeutil.ValidOffset(offset) {
		s.log.Warn(fmt.Sprintf("Chat %d sent invalid timezone choice %q", chatID, offsetText))
		return dto.Reply{Text: msgPickTimezone, Keyboard: dto.KeyboardTimezones}
	}

	if err := s.userSvc.Register(ctx, dto.RegisterUserRequest{ChatID: chatID, OffsetHours: offset}); err != nil {
		s.log.Error(fmt.Sprintf("Failed to register chat %d", chatID), err)
		return dto.Reply{Text: msgGenericFailure}
	}

	return dto.Reply{Text: fmt.Sprintf("✅ Great! Your timezone: UTC%+d\n\nUse /list to manage your reminders.", offset)}
}

// List renders the user's reminders with the action keyboard.
func (s *conversationService) List(ctx context.Context, chatID int64) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	offset, reply, ok := s.requireRegistration(ctx, chatID)
	if !ok {
		return reply
	}

	reminders, err := s.reminderRepo.FindByChatID(ctx, chatID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for chat %d", chatID), err)
		return dto.Reply{Text: msgGenericFailure}
	}
	if len(reminders) == 0 {
		return dto.Reply{Text: msgNoReminders, Keyboard: dto.KeyboardActions}
	}

	return dto.Reply{
		Text:     "📋 <b>Your reminders:</b>\n\n" + renderNumberedList(reminders, offset),
		Keyboard: dto.KeyboardActions,
	}
}

// StartCreate begins the create flow.
func (s *conversationService) StartCreate(ctx context.Context, chatID int64) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	if _, reply, ok := s.requireRegistration(ctx, chatID); !ok {
		return reply
	}

	// Any in-progress flow is replaced wholesale; flows never merge.
	s.sessions.Put(chatID, &Session{State: constant.StateAwaitingTitle})
	return dto.Reply{Text: msgPromptTitle, Keyboard: dto.KeyboardBack}
}

// StartEdit begins the edit flow with a fresh snapshot.
func (s *conversationService) StartEdit(ctx context.Context, chatID int64) dto.Reply {
	return s.startSelection(ctx, chatID, constant.StateAwaitingEditSelection, "edit")
}

// StartDelete begins the delete flow with a fresh snapshot.
func (s *conversationService) StartDelete(ctx context.Context, chatID int64) dto.Reply {
	return s.startSelection(ctx, chatID, constant.StateAwaitingDeleteSelection, "delete")
}

// StartShow begins the show flow with a fresh snapshot.
func (s *conversationService) StartShow(ctx context.Context, chatID int64) dto.Reply {
	return s.startSelection(ctx, chatID, constant.StateAwaitingShowSelection, "view")
}

// startSelection captures the snapshot all three selection flows resolve
// numbered input against.
func (s *conversationService) startSelection(ctx context.Context, chatID int64, state constant.ConversationState, verb string) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	offset, reply, ok := s.requireRegistration(ctx, chatID)
	if !ok {
		return reply
	}

	reminders, err := s.reminderRepo.FindByChatID(ctx, chatID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to snapshot reminders for chat %d", chatID), err)
		return dto.Reply{Text: msgGenericFailure}
	}
	if len(reminders) == 0 {
		return dto.Reply{Text: msgNoReminders, Keyboard: dto.KeyboardActions}
	}

	s.sessions.Put(chatID, &Session{State: state, Snapshot: copyReminders(reminders)})
	text := fmt.Sprintf("📋 <b>Your reminders:</b>\n\n%s\nEnter the number of the reminder you want to %s:",
		renderNumberedList(reminders, offset), verb)
	return dto.Reply{Text: text, Keyboard: dto.KeyboardBack}
}

// HandleText feeds free text to whichever state is active.
func (s *conversationService) HandleText(ctx context.Context, chatID int64, text string) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	offset, reply, ok := s.requireRegistration(ctx, chatID)
	if !ok {
		return reply
	}

	sess := s.sessions.Get(chatID)
	switch sess.State {
	case constant.StateIdle:
		return dto.Reply{Text: msgIdleHint, Keyboard: dto.KeyboardActions}
	case constant.StateAwaitingTitle:
		return s.handleTitle(chatID, sess, text)
	case constant.StateAwaitingTime:
		return s.handleTime(chatID, sess, text, offset)
	case constant.StateAwaitingMessage:
		return s.handleMessage(ctx, chatID, sess, text, offset)
	case constant.StateAwaitingEditSelection:
		return s.handleEditSelection(chatID, sess, text)
	case constant.StateAwaitingEditTitle:
		return s.handleEditTitle(chatID, sess, text, offset)
	case constant.StateAwaitingEditTime:
		return s.handleEditTime(chatID, sess, text, offset)
	case constant.StateAwaitingEditMessage:
		return s.handleEditMessage(ctx, chatID, sess, text)
	case constant.StateAwaitingDeleteSelection:
		return s.handleDeleteSelection(ctx, chatID, sess, text)
	case constant.StateAwaitingShowSelection:
		return s.handleShowSelection(chatID, sess, text, offset)
	default:
		s.log.Warn(fmt.Sprintf("Chat %d has unknown conversation state %d", chatID, sess.State))
		s.sessions.Clear(chatID)
		return dto.Reply{Text: msgGenericFailure}
	}
}

// Cancel discards the session regardless of its state.
func (s *conversationService) Cancel(ctx context.Context, chatID int64) dto.Reply {
	release := s.sessions.Acquire(chatID)
	defer release()

	s.sessions.Clear(chatID)
	return dto.Reply{Text: msgCancelled, Keyboard: dto.KeyboardActions}
}

// requireRegistration enforces the registration gate. It returns the user's
// offset when registered, or the redirect reply otherwise.
func (s *conversationService) requireRegistration(ctx context.Context, chatID int64) (int, dto.Reply, bool) {
	offset, err := s.userSvc.GetOffset(ctx, chatID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotRegistered) {
			return 0, dto.Reply{Text: msgNotRegistered}, false
		}
		s.log.Error(fmt.Sprintf("Failed to load offset for chat %d", chatID), err)
		return 0, dto.Reply{Text: msgGenericFailure}, false
	}
	return offset, dto.Reply{}, true
}

// --- create flow ---

func (s *conversationService) handleTitle(chatID int64, sess *Session, text string) dto.Reply {
	title := strings.TrimSpace(text)
	if err := validateTitle(title); err != nil {
		return dto.Reply{Text: msgTitleTooLong, Keyboard: dto.KeyboardBack}
	}

	sess.Title = title
	sess.State = constant.StateAwaitingTime
	s.sessions.Put(chatID, sess)
	return dto.Reply{Text: msgPromptTime, Keyboard: dto.KeyboardBack}
}

func (s *conversationService) handleTime(chatID int64, sess *Session, text string, offset int) dto.Reply {
	utc, err := timeutil.ToUTC(strings.TrimSpace(text), offset, s.now())
	if err != nil {
		return dto.Reply{Text: timeErrorMessage(err), Keyboard: dto.KeyboardBack}
	}

	sess.TimeUTC = utc
	sess.State = constant.StateAwaitingMessage
	s.sessions.Put(chatID, sess)
	return dto.Reply{Text: msgPromptMessage, Keyboard: dto.KeyboardBack}
}

func (s *conversationService) handleMessage(ctx context.Context, chatID int64, sess *Session, text string, offset int) dto.Reply {
	message := text
	if strings.TrimSpace(message) == keepCurrent {
		message = ""
	}

	reminder := &entity.Reminder{
		ChatID:     chatID,
		Title:      sess.Title,
		RemindTime: sess.TimeUTC,
		Message:    message,
	}
	if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder for chat %d", chatID), err)
		// The draft survives a transient store failure; resending the
		// message retries the create.
		return dto.Reply{Text: msgGenericFailure, Keyboard: dto.KeyboardBack}
	}

	s.sessions.Clear(chatID)
	s.log.Info(fmt.Sprintf("Created reminder %d for chat %d at %v", reminder.ID, chatID, reminder.RemindTime))
	text = fmt.Sprintf("✅ Excellent, the reminder is ready!\n\n📌 <b>%s</b> — %s",
		escapeHTML(reminder.Title), timeutil.ToLocal(reminder.RemindTime, offset))
	return dto.Reply{Text: text, Keyboard: dto.KeyboardActions}
}

// --- edit flow ---

func (s *conversationService) handleEditSelection(chatID int64, sess *Session, text string) dto.Reply {
	target, err := resolveSelection(sess.Snapshot, text)
	if err != nil {
		return dto.Reply{Text: msgBadIndex, Keyboard: dto.KeyboardBack}
	}

	sess.Target = target
	sess.State = constant.StateAwaitingEditTitle
	s.sessions.Put(chatID, sess)
	prompt := fmt.Sprintf("📝 Current name: <b>%s</b>\nEnter a new name (1-20 characters), or send \"-\" to keep it.", escapeHTML(target.Title))
	return dto.Reply{Text: prompt, Keyboard: dto.KeyboardBack}
}

func (s *conversationService) handleEditTitle(chatID int64, sess *Session, text string, offset int) dto.Reply {
	title := strings.TrimSpace(text)
	if title == keepCurrent {
		title = sess.Target.Title
	} else if err := validateTitle(title); err != nil {
		return dto.Reply{Text: msgTitleTooLong, Keyboard: dto.KeyboardBack}
	}

	sess.Title = title
	sess.State = constant.StateAwaitingEditTime
	s.sessions.Put(chatID, sess)
	prompt := fmt.Sprintf("⏰ Current time: <b>%s</b>\nEnter a new time (YYYY-MM-DD HH:MM), or send \"-\" to keep it.",
		timeutil.ToLocal(sess.Target.RemindTime, offset))
	return dto.Reply{Text: prompt, Keyboard: dto.KeyboardBack}
}

func (s *conversationService) handleEditTime(chatID int64, sess *Session, text string, offset int) dto.Reply {
	input := strings.TrimSpace(text)
	if input == keepCurrent {
		sess.TimeUTC = sess.Target.RemindTime
	} else {
		utc, err := timeutil.ToUTC(input, offset, s.now())
		if err != nil {
			return dto.Reply{Text: timeErrorMessage(err), Keyboard: dto.KeyboardBack}
		}
		sess.TimeUTC = utc
	}

	sess.State = constant.StateAwaitingEditMessage
	s.sessions.Put(chatID, sess)
	current := escapeHTML(sess.Target.Message)
	if current == "" {
		current = "(empty)"
	}
	prompt := fmt.Sprintf("💬 Current message: %s\nEnter a new message, or send \"-\" to keep it.", current)
	return dto.Reply{Text: prompt, Keyboard: dto.KeyboardBack}
}

func (s *conversationService) handleEditMessage(ctx context.Context, chatID int64, sess *Session, text string) dto.Reply {
	message := text
	if strings.TrimSpace(message) == keepCurrent {
		message = sess.Target.Message
	}

	// Re-fetch before updating: the reminder may have been dispatched and
	// deleted while the flow was in progress.
	reminder, err := s.reminderRepo.FindByID(ctx, sess.Target.ID)
	if err != nil {
		if errors.Is(err, appErrors.ErrReminderNotFound) {
			s.sessions.Clear(chatID)
			return dto.Reply{Text: msgReminderGone, Keyboard: dto.KeyboardActions}
		}
		s.log.Error(fmt.Sprintf("Failed to fetch reminder %d for edit", sess.Target.ID), err)
		return dto.Reply{Text: msgGenericFailure, Keyboard: dto.KeyboardBack}
	}

	reminder.Title = sess.Title
	reminder.RemindTime = sess.TimeUTC
	reminder.Message = message
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update reminder %d", reminder.ID), err)
		return dto.Reply{Text: msgGenericFailure, Keyboard: dto.KeyboardBack}
	}

	s.sessions.Clear(chatID)
	s.log.Info(fmt.Sprintf("Updated reminder %d for chat %d", reminder.ID, chatID))
	return dto.Reply{Text: msgUpdated, Keyboard: dto.KeyboardActions}
}

// --- delete / show flows ---

func (s *conversationService) handleDeleteSelection(ctx context.Context, chatID int64, sess *Session, text string) dto.Reply {
	target, err := resolveSelection(sess.Snapshot, text)
	if err != nil {
		return dto.Reply{Text: msgBadIndex, Keyboard: dto.KeyboardBack}
	}

	if err := s.reminderRepo.Delete(ctx, target.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete reminder %d", target.ID), err)
		return dto.Reply{Text: msgGenericFailure, Keyboard: dto.KeyboardBack}
	}

	s.sessions.Clear(chatID)
	s.log.Info(fmt.Sprintf("Deleted reminder %d for chat %d", target.ID, chatID))
	return dto.Reply{Text: msgDeleted, Keyboard: dto.KeyboardActions}
}

func (s *conversationService) handleShowSelection(chatID int64, sess *Session, text string, offset int) dto.Reply {
	target, err := resolveSelection(sess.Snapshot, text)
	if err != nil {
		return dto.Reply{Text: msgBadIndex, Keyboard: dto.KeyboardBack}
	}

	s.sessions.Clear(chatID)
	message := escapeHTML(target.Message)
	if message == "" {
		message = "(empty)"
	}
	text = fmt.Sprintf("📌 <b>%s</b>\n⏰ <b>Time:</b> %s\n💬 <b>Message:</b> %s",
		escapeHTML(target.Title), timeutil.ToLocal(target.RemindTime, offset), message)
	return dto.Reply{Text: text, Keyboard: dto.KeyboardActions}
}

// --- helpers ---

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > entity.MaxTitleLength {
		return fmt.Errorf("%w: %d characters", appErrors.ErrInvalidTitle, n)
	}
	return nil
}

// resolveSelection maps 1-based numeric input onto the session snapshot.
// The snapshot is never re-fetched: position i always means the item that
// was at position i when the flow started.
func resolveSelection(snapshot []*entity.Reminder, text string) (*entity.Reminder, error) {
	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || index < 1 || index > len(snapshot) {
		return nil, fmt.Errorf("%w: %q", appErrors.ErrInvalidSelection, text)
	}
	return snapshot[index-1], nil
}

func renderNumberedList(reminders []*entity.Reminder, offset int) string {
	var builder strings.Builder
	for i, r := range reminders {
		builder.WriteString(fmt.Sprintf("%d. 📌 %s — %s\n", i+1, escapeHTML(r.Title), timeutil.ToLocal(r.RemindTime, offset)))
	}
	return builder.String()
}

// escapeHTML neutralizes user-supplied text before it is interpolated into a
// ParseMode-HTML message. Without it a title containing "<" makes Telegram
// reject the whole send.
func escapeHTML(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func copyReminders(reminders []*entity.Reminder) []*entity.Reminder {
	snapshot := make([]*entity.Reminder, len(reminders))
	for i, r := range reminders {
		cp := *r
		snapshot[i] = &cp
	}
	return snapshot
}

func timeErrorMessage(err error) string {
	if errors.Is(err, appErrors.ErrPastTime) {
		return msgPastTime
	}
	return msgBadTimeFormat
}
