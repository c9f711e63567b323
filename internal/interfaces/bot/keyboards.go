package bot

import (
	"fmt"
	"time"

	"remindbot/internal/pkg/timeutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values understood by the handler.
const (
	callbackCreate = "create"
	callbackDelete = "delete"
	callbackShow   = "show"
	callbackEdit   = "edit"
	callbackBack   = "back"
)

// actionsKeyboard is the reminder action row shown below /list output.
func actionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Create", callbackCreate),
			tgbotapi.NewInlineKeyboardButtonData("Delete", callbackDelete),
			tgbotapi.NewInlineKeyboardButtonData("Show", callbackShow),
			tgbotapi.NewInlineKeyboardButtonData("Edit", callbackEdit),
		),
	)
}

// backKeyboard is the single-button cancel row shown during flows.
func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", callbackBack),
		),
	)
}

// timezonesKeyboard lists the 25 selectable whole-hour offsets, each labeled
// with the clock the user would currently see in that offset. The callback
// data is the signed integer string the registration flow parses.
func timezonesKeyboard(now time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for offset := timeutil.MinOffset; offset <= timeutil.MaxOffset; offset++ {
		label := fmt.Sprintf("UTC%+d (%s)", offset, timeutil.ClockAt(now, offset))
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%+d", offset)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
