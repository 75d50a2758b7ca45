package models

import "time"

type Item struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ShoppingListID uint         `gorm:"not null;index" json:"shopping_list_id"`
	ShoppingList   ShoppingList `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"-"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	Quantity       *int         `json:"quantity,omitempty"`
	Unit           *string      `gorm:"size:50" json:"unit,omitempty"`
	Notes          *string      `gorm:"type:text" json:"notes,omitempty"`
	IsDone         bool         `gorm:"not null;default:false" json:"is_done"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
