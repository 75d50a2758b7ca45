package services

import (
	"errors"

	"github.com/bifidokk/shopping-list/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccessService answers authorization questions about lists. Both checks are
// plain booleans; callers translate "no access" into not-found and "not the
// owner" into forbidden.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// HasAccess reports whether the user owns the list or appears among its
// shares.
func (s *AccessService) HasAccess(listID, userID uint) bool {
	var count int64
	s.db.Model(&models.ShoppingList{}).
		Joins("LEFT JOIN list_shares ON list_shares.shopping_list_id = shopping_lists.id").
		Where("shopping_lists.id = ? AND (shopping_lists.owner_id = ? OR list_shares.shared_with_user_id = ?)", listID, userID, userID).
		Count(&count)
	return count > 0
}

func (s *AccessService) IsOwner(listID, userID uint) bool {
	var count int64
	s.db.Model(&models.ShoppingList{}).
		Where("id = ? AND owner_id = ?", listID, userID).
		Count(&count)
	return count > 0
}

// FindByID is an unauthorized point lookup. Handlers use it to report
// non-existence before checking privileges.
func (s *AccessService) FindByID(listID uint) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := s.db.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindAccessible returns every list the user owns or collaborates on, the
// user's default list first, then most recently updated.
func (s *AccessService) FindAccessible(userID uint, defaultListID uint) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := s.db.Model(&models.ShoppingList{}).
		Joins("LEFT JOIN list_shares ON list_shares.shopping_list_id = shopping_lists.id").
		Where("shopping_lists.owner_id = ? OR list_shares.shared_with_user_id = ?", userID, userID).
		Group("shopping_lists.id").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN shopping_lists.id = ? THEN 0 ELSE 1 END, shopping_lists.updated_at DESC",
			Vars:               []interface{}{defaultListID},
			WithoutParentheses: true,
		}}).
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}
