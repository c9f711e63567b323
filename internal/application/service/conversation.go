package service

import (
	"context"

	"remindbot/internal/application/dto"
)

// ConversationService is the per-user finite-state machine driving the
// create, edit, delete and show flows. Every method serializes on the user's
// session; methods for different users run concurrently.
type ConversationService interface {
	// Welcome renders the /start greeting.
	Welcome() dto.Reply
	// Help renders the /help command list.
	Help() dto.Reply
	// StartRegistration presents the timezone choices.
	StartRegistration(ctx context.Context, chatID int64) dto.Reply
	// CompleteRegistration consumes a signed-integer offset choice ("+3", "-5", "0").
	CompleteRegistration(ctx context.Context, chatID int64, offsetText string) dto.Reply
	// List renders the user's reminders with the action keyboard.
	List(ctx context.Context, chatID int64) dto.Reply
	// StartCreate begins the create flow.
	StartCreate(ctx context.Context, chatID int64) dto.Reply
	// StartEdit begins the edit flow with a fresh snapshot.
	StartEdit(ctx context.Context, chatID int64) dto.Reply
	// StartDelete begins the delete flow with a fresh snapshot.
	StartDelete(ctx context.Context, chatID int64) dto.Reply
	// StartShow begins the show flow with a fresh snapshot.
	StartShow(ctx context.Context, chatID int64) dto.Reply
	// HandleText feeds free text to whichever state is active.
	HandleText(ctx context.Context, chatID int64, text string) dto.Reply
	// Cancel discards the session regardless of its state.
	Cancel(ctx context.Context, chatID int64) dto.Reply
}
