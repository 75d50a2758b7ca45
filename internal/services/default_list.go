package services

import (
	"errors"
	"time"

	"github.com/bifidokk/shopping-list/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultListService maintains the per-user default-list mapping. Writes go
// through database-level upserts keyed by user_id so concurrent requests
// from the same user cannot create two mappings or surface a duplicate-key
// error.
type DefaultListService struct {
	db *gorm.DB
}

func NewDefaultListService(db *gorm.DB) *DefaultListService {
	return &DefaultListService{db: db}
}

// GetDefaultListID returns the user's default list ID, or 0 when the user
// has no default.
func (s *DefaultListService) GetDefaultListID(userID uint) (uint, error) {
	var mapping models.UserDefaultList
	if err := s.db.Where("user_id = ?", userID).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return mapping.ShoppingListID, nil
}

// SetDefault points the user's mapping at the given list, creating the row
// if needed. Setting the already-current default is a no-op update.
func (s *DefaultListService) SetDefault(userID, listID uint) error {
	return s.setDefault(s.db, userID, listID)
}

func (s *DefaultListService) setDefault(tx *gorm.DB, userID, listID uint) error {
	mapping := models.UserDefaultList{
		UserID:         userID,
		ShoppingListID: listID,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"shopping_list_id": listID,
			"updated_at":       time.Now(),
		}),
	}).Create(&mapping).Error
}

// setDefaultIfAbsent inserts the mapping only when the user has none. This
// is the "first accessible list becomes the default" path on list creation:
// when two creates race, exactly one insert wins and the other is dropped
// by ON CONFLICT DO NOTHING.
func (s *DefaultListService) setDefaultIfAbsent(tx *gorm.DB, userID, listID uint) error {
	mapping := models.UserDefaultList{
		UserID:         userID,
		ShoppingListID: listID,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&mapping).Error
}
