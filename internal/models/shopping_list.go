package models

import "time"

// ShoppingList is owned by exactly one user. UserID records the creator;
// it always equals OwnerID at creation and diverges only if ownership
// transfer is ever introduced.
type ShoppingList struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	OwnerID     uint        `gorm:"not null;index" json:"owner_id"`
	Owner       User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Description *string     `gorm:"type:text" json:"description,omitempty"`
	SharedWith  int         `gorm:"not null;default:0" json:"shared_with"`
	Items       []Item      `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Shares      []ListShare `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
