package services

import (
	"errors"
	"time"

	"github.com/bifidokk/shopping-list/internal/models"

	"gorm.io/gorm"
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

type CreateItemInput struct {
	Name     string
	Quantity *int
	Unit     *string
	Notes    *string
	IsDone   bool
}

type UpdateItemInput struct {
	Name     *string
	Quantity *int
	Unit     *string
	Notes    *string
	IsDone   *bool
}

func (s *ItemService) Create(input CreateItemInput, list *models.ShoppingList) (*models.Item, error) {
	item := models.Item{
		ShoppingListID: list.ID,
		Name:           input.Name,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		Notes:          input.Notes,
		IsDone:         input.IsDone,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Model(list).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update; only non-nil fields change. The item and
// its parent list both get their updated_at bumped.
func (s *ItemService) Update(item *models.Item, input UpdateItemInput) (*models.Item, error) {
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Quantity != nil {
		item.Quantity = input.Quantity
	}
	if input.Unit != nil {
		item.Unit = input.Unit
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}
	if input.IsDone != nil {
		item.IsDone = *input.IsDone
	}
	item.UpdatedAt = time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Model(&models.ShoppingList{}).Where("id = ?", item.ShoppingListID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(item *models.Item) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		return tx.Model(&models.ShoppingList{}).Where("id = ?", item.ShoppingListID).
			Update("updated_at", time.Now()).Error
	})
}

func (s *ItemService) Toggle(item *models.Item) (*models.Item, error) {
	item.IsDone = !item.IsDone
	item.UpdatedAt = time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return tx.Model(&models.ShoppingList{}).Where("id = ?", item.ShoppingListID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) ListItems(list *models.ShoppingList) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Where("shopping_list_id = ?", list.ID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ItemService) FindItem(itemID uint, list *models.ShoppingList) (*models.Item, error) {
	var item models.Item
	err := s.db.Where("id = ? AND shopping_list_id = ?", itemID, list.ID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AddItemIfNotExists creates an item unless one with the exact same name
// (case and whitespace sensitive) already exists in the list. Returns nil
// without error when the item was already present. New items default to
// quantity 1, not done.
func (s *ItemService) AddItemIfNotExists(name string, list *models.ShoppingList) (*models.Item, error) {
	var existing models.Item
	err := s.db.Where("shopping_list_id = ? AND name = ?", list.ID, name).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quantity := 1
	return s.Create(CreateItemInput{Name: name, Quantity: &quantity}, list)
}

// ItemCounts holds the per-list totals used by list responses.
type ItemCounts struct {
	Total     int
	Completed int
}

// CountForLists returns item totals for the given lists in one query.
func (s *ItemService) CountForLists(listIDs []uint) (map[uint]ItemCounts, error) {
	counts := make(map[uint]ItemCounts, len(listIDs))
	if len(listIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ShoppingListID uint
		Total          int
		Completed      int
	}
	err := s.db.Model(&models.Item{}).
		Select("shopping_list_id, COUNT(*) AS total, SUM(CASE WHEN is_done THEN 1 ELSE 0 END) AS completed").
		Where("shopping_list_id IN ?", listIDs).
		Group("shopping_list_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ShoppingListID] = ItemCounts{Total: row.Total, Completed: row.Completed}
	}
	return counts, nil
}
