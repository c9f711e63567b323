package entity

// User is a registered bot user. OffsetHours is the fixed whole-hour UTC
// offset chosen during registration and used for all local-time conversions.
type User struct {
	ChatID      int64 `gorm:"column:chat_id;primaryKey"`
	OffsetHours int   `gorm:"column:offset_hours"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}
