package services

import (
	"errors"
	"strings"
	"time"

	"github.com/bifidokk/shopping-list/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ShareService manages collaborator relationships and keeps the list's
// denormalized shared_with counter in step with the share rows. It does not
// authorize; callers check ownership first.
type ShareService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewShareService(db *gorm.DB, log *logrus.Logger) *ShareService {
	return &ShareService{db: db, log: log}
}

// ShareList shares the list with the user behind the given Telegram handle.
// A leading @ is accepted and stripped.
func (s *ShareService) ShareList(list *models.ShoppingList, username string, owner *models.User) (*models.ListShare, error) {
	handle := strings.TrimPrefix(username, "@")

	var target models.User
	if err := s.db.Where("username = ?", handle).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if target.ID == owner.ID {
		return nil, ErrSelfShare
	}

	share := models.ListShare{
		ShoppingListID:   list.ID,
		OwnerID:          owner.ID,
		SharedWithUserID: target.ID,
	}

	// The unique index on (list, user) is the authority on duplicates; the
	// counter moves in the same SQL statement group so concurrent shares
	// each land exactly one increment.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&share).Error; err != nil {
			return err
		}
		return tx.Model(&models.ShoppingList{}).Where("id = ?", list.ID).Updates(map[string]interface{}{
			"shared_with": gorm.Expr("shared_with + 1"),
			"updated_at":  time.Now(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyShared
		}
		return nil, err
	}
	share.SharedWithUser = target

	s.log.WithFields(logrus.Fields{
		"list_id":             list.ID,
		"owner_id":            owner.TelegramID,
		"shared_with_user_id": target.TelegramID,
	}).Info("list shared with user")

	return &share, nil
}

// RemoveShare deletes the share and decrements the counter, floored at 0 in
// SQL so concurrent or repeated removals never drive it negative.
func (s *ShareService) RemoveShare(share *models.ListShare) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(share)
		if res.Error != nil {
			return res.Error
		}
		// Only a removal that actually deleted a row may decrement,
		// otherwise a repeated removal would eat another share's count.
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.ShoppingList{}).Where("id = ?", share.ShoppingListID).Updates(map[string]interface{}{
			"shared_with": gorm.Expr("CASE WHEN shared_with > 0 THEN shared_with - 1 ELSE 0 END"),
			"updated_at":  time.Now(),
		}).Error
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"share_id": share.ID,
		"list_id":  share.ShoppingListID,
	}).Info("share removed")

	return nil
}

// ListShares returns the list's shares oldest first.
func (s *ShareService) ListShares(list *models.ShoppingList) ([]models.ListShare, error) {
	var shares []models.ListShare
	err := s.db.Where("shopping_list_id = ?", list.ID).
		Preload("SharedWithUser").
		Order("created_at ASC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// FindShare looks up the share granting the given user access.
func (s *ShareService) FindShare(list *models.ShoppingList, userID uint) (*models.ListShare, error) {
	var share models.ListShare
	err := s.db.Where("shopping_list_id = ? AND shared_with_user_id = ?", list.ID, userID).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &share, nil
}

// CountShares recounts the share rows for a list. The shared_with counter
// must always agree with it.
func (s *ShareService) CountShares(listID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ListShare{}).Where("shopping_list_id = ?", listID).Count(&count).Error
	return count, err
}
