package dto

// RegisterUserRequest is the DTO for completing (or repeating) registration.
type RegisterUserRequest struct {
	ChatID      int64 `json:"chat_id"`
	OffsetHours int   `json:"offset_hours"`
}
