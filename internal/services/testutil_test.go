package services

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/bifidokk/shopping-list/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with foreign keys enabled
// so cascading deletes behave like production postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ShoppingList{},
		&models.Item{},
		&models.ListShare{},
		&models.UserDefaultList{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createTestUser(t *testing.T, db *gorm.DB, telegramID int64, username string) *models.User {
	t.Helper()

	user := models.User{TelegramID: telegramID}
	if username != "" {
		user.Username = &username
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// newServices wires the service graph the way cmd/server does.
func newServices(db *gorm.DB) (*AccessService, *DefaultListService, *ShoppingListService, *ItemService, *ShareService) {
	access := NewAccessService(db)
	defaults := NewDefaultListService(db)
	lists := NewShoppingListService(db, access, defaults)
	items := NewItemService(db)
	shares := NewShareService(db, testLogger())
	return access, defaults, lists, items, shares
}
