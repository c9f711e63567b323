package errors

import "errors"

// Custom application errors
var (
	ErrUserNotFound      = errors.New("user not found")                     // No user record for the chat id
	ErrNotRegistered     = errors.New("user is not registered")             // Command requires a completed /register
	ErrReminderNotFound  = errors.New("reminder not found")                 // Reminder row no longer exists
	ErrInvalidTitle      = errors.New("invalid reminder title")             // Empty or longer than 20 characters
	ErrInvalidTimeFormat = errors.New("invalid date/time format")           // Input does not match YYYY-MM-DD HH:MM
	ErrPastTime          = errors.New("reminder time is not in the future") // Normalized instant is not strictly future
	ErrInvalidSelection  = errors.New("invalid reminder selection")         // Non-numeric or out-of-range list index
	ErrInvalidOffset     = errors.New("invalid UTC offset")                 // Offset outside -12..+12 whole hours
	ErrDatabaseOperation = errors.New("database operation failed")          // Generic database error
	ErrTelegramAPI       = errors.New("telegram API request failed")        // Generic Telegram API error
	ErrInternalServer    = errors.New("internal server error")              // Generic internal error
)
