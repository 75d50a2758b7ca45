package services

import (
	"time"

	"github.com/bifidokk/shopping-list/internal/models"

	"gorm.io/gorm"
)

type ShoppingListService struct {
	db          *gorm.DB
	access      *AccessService
	defaultList *DefaultListService
}

func NewShoppingListService(db *gorm.DB, access *AccessService, defaultList *DefaultListService) *ShoppingListService {
	return &ShoppingListService{db: db, access: access, defaultList: defaultList}
}

// Create persists a new list owned by the user. If the user has no default
// mapping at all this list becomes their default; otherwise the mapping is
// left alone. Both writes happen in one transaction.
func (s *ShoppingListService) Create(user *models.User, name string, description *string) (*models.ShoppingList, error) {
	list := models.ShoppingList{
		UserID:      user.ID,
		OwnerID:     user.ID,
		Name:        name,
		Description: description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		return s.defaultList.setDefaultIfAbsent(tx, user.ID, list.ID)
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Update applies a partial update; only non-nil fields change.
func (s *ShoppingListService) Update(list *models.ShoppingList, name *string, description *string) (*models.ShoppingList, error) {
	if name != nil {
		list.Name = *name
	}
	if description != nil {
		list.Description = description
	}
	list.UpdatedAt = time.Now()
	if err := s.db.Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the list. Items, shares and default-list mappings go with
// it via ON DELETE CASCADE; users whose default this was are left without
// one until they pick another.
func (s *ShoppingListService) Delete(list *models.ShoppingList) error {
	return s.db.Delete(list).Error
}

// SetAsDefault makes the list the caller's default. The list itself is not
// mutated beyond its timestamp; owner and collaborators each keep their own
// independent mapping.
func (s *ShoppingListService) SetAsDefault(list *models.ShoppingList, user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.defaultList.setDefault(tx, user.ID, list.ID); err != nil {
			return err
		}
		return tx.Model(list).Update("updated_at", time.Now()).Error
	})
}

// FindForUser returns the list when the user can access it, ErrListNotFound
// otherwise. Existence without access is deliberately indistinguishable
// from non-existence here.
func (s *ShoppingListService) FindForUser(listID uint, user *models.User) (*models.ShoppingList, error) {
	if !s.access.HasAccess(listID, user.ID) {
		return nil, ErrListNotFound
	}
	return s.access.FindByID(listID)
}

// FindUserLists returns every accessible list, default first.
func (s *ShoppingListService) FindUserLists(user *models.User) ([]models.ShoppingList, error) {
	defaultListID, err := s.defaultList.GetDefaultListID(user.ID)
	if err != nil {
		return nil, err
	}
	return s.access.FindAccessible(user.ID, defaultListID)
}

func (s *ShoppingListService) GetDefaultListID(user *models.User) (uint, error) {
	return s.defaultList.GetDefaultListID(user.ID)
}
