package models

import "time"

// ListShare grants a collaborator access to a list. OwnerID is denormalized
// from the list for audit. A list can be shared with a given user only once.
type ListShare struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ShoppingListID   uint         `gorm:"not null;uniqueIndex:idx_list_shared_user" json:"shopping_list_id"`
	ShoppingList     ShoppingList `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"-"`
	OwnerID          uint         `gorm:"not null;index" json:"owner_id"`
	Owner            User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	SharedWithUserID uint         `gorm:"not null;uniqueIndex:idx_list_shared_user" json:"shared_with_user_id"`
	SharedWithUser   User         `gorm:"foreignKey:SharedWithUserID;constraint:OnDelete:CASCADE" json:"shared_with_user"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
