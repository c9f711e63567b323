package bot

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"remindbot/internal/application/dto"
	"remindbot/internal/application/service"
	"remindbot/internal/infrastructure/telegram"
	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// timezonePattern matches the signed-integer offset callbacks sent by the
// registration keyboard.
var timezonePattern = regexp.MustCompile(`^[+-]?\d{1,2}$`)

// Handler consumes the Telegram long-poll update stream and routes each
// update to the conversation controller. Every update runs in its own
// goroutine; per-user ordering is enforced inside the controller, so slow
// users never block unrelated chats.
type Handler struct {
	client *telegram.Client
	conv   service.ConversationService
	log    logger.Logger
}

// NewHandler creates a new Telegram update handler.
func NewHandler(client *telegram.Client, conv service.ConversationService, log logger.Logger) *Handler {
	return &Handler{
		client: client,
		conv:   conv,
		log:    log,
	}
}

// Run blocks consuming updates until the update channel is closed by Stop.
func (h *Handler) Run(ctx context.Context) {
	h.log.Info("Telegram update loop started.")
	for update := range h.client.Updates() {
		go h.handleUpdate(ctx, update)
	}
	h.log.Info("Telegram update loop stopped.")
}

// handleUpdate processes a single update. A panic here is isolated to this
// one event.
func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("Recovered from panic in update handler", fmt.Errorf("%w: %v", appErrors.ErrInternalServer, r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	var reply dto.Reply
	if message.IsCommand() {
		switch message.Command() {
		case "start":
			reply = h.conv.Welcome()
		case "help":
			reply = h.conv.Help()
		case "register":
			reply = h.conv.StartRegistration(ctx, chatID)
		case "list":
			reply = h.conv.List(ctx, chatID)
		case "cancel":
			reply = h.conv.Cancel(ctx, chatID)
		default:
			reply = dto.Reply{Text: "❓ Unknown command. Press /help to see what this bot can do."}
		}
	} else {
		reply = h.conv.HandleText(ctx, chatID, message.Text)
	}

	h.deliver(ctx, chatID, reply)
}

func (h *Handler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the client drops the loading state.
	h.client.AnswerCallback(callback.ID)

	if callback.Message == nil {
		h.log.Warn(fmt.Sprintf("Callback %s without an attached message", callback.ID))
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	var reply dto.Reply
	switch {
	case data == callbackCreate:
		reply = h.conv.StartCreate(ctx, chatID)
	case data == callbackDelete:
		reply = h.conv.StartDelete(ctx, chatID)
	case data == callbackShow:
		reply = h.conv.StartShow(ctx, chatID)
	case data == callbackEdit:
		reply = h.conv.StartEdit(ctx, chatID)
	case data == callbackBack:
		reply = h.conv.Cancel(ctx, chatID)
	case timezonePattern.MatchString(data):
		reply = h.conv.CompleteRegistration(ctx, chatID, data)
	default:
		h.log.Warn(fmt.Sprintf("Unhandled callback data %q from chat %d", data, chatID))
		return
	}

	h.deliver(ctx, chatID, reply)
}

// deliver sends the controller's reply with the keyboard it named.
func (h *Handler) deliver(ctx context.Context, chatID int64, reply dto.Reply) {
	if reply.Text == "" {
		return
	}

	var err error
	switch reply.Keyboard {
	case dto.KeyboardActions:
		err = h.client.SendWithKeyboard(ctx, chatID, reply.Text, actionsKeyboard())
	case dto.KeyboardTimezones:
		err = h.client.SendWithKeyboard(ctx, chatID, reply.Text, timezonesKeyboard(time.Now()))
	case dto.KeyboardBack:
		err = h.client.SendWithKeyboard(ctx, chatID, reply.Text, backKeyboard())
	default:
		err = h.client.Send(ctx, chatID, reply.Text)
	}
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to deliver reply to chat %d", chatID), err)
	}
}
