package models

import "time"

// UserDefaultList maps a user to the list they implicitly target. UserID is
// the primary key, so a user can have at most one default. The row cascades
// away when either the user or the list is deleted; nothing is promoted in
// its place.
type UserDefaultList struct {
	UserID         uint         `gorm:"primaryKey" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ShoppingListID uint         `gorm:"not null;index" json:"shopping_list_id"`
	ShoppingList   ShoppingList `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
