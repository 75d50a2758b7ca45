package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TelegramID   int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	FirstName    *string   `gorm:"size:255" json:"first_name,omitempty"`
	LastName     *string   `gorm:"size:255" json:"last_name,omitempty"`
	Username     *string   `gorm:"size:255;index" json:"username,omitempty"`
	LanguageCode *string   `gorm:"size:10" json:"language_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
