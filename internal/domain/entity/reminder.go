package entity

import "time"

// MaxTitleLength bounds the reminder title (in characters, not bytes).
const MaxTitleLength = 20

// Reminder is a scheduled one-shot notification. RemindTime is always stored
// as a UTC instant with zeroed seconds; localization happens at the edges.
type Reminder struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ChatID     int64     `gorm:"column:chat_id;index"`
	Title      string    `gorm:"column:title;size:20"`
	RemindTime time.Time `gorm:"column:remind_time;index"`
	Message    string    `gorm:"column:message;type:text"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}
