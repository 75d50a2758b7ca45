package database

import (
	"fmt"
	"log"

	"github.com/bifidokk/shopping-list/internal/config"
	"github.com/bifidokk/shopping-list/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.ShoppingList{},
		&models.Item{},
		&models.ListShare{},
		&models.UserDefaultList{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Earlier versions stored a per-owner is_default boolean on the list
	// with a partial unique index. Defaults are per-user rows now; move any
	// surviving flags over, then drop the old column and index.
	db.Exec(`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'shopping_lists' AND column_name = 'is_default')
		THEN
			INSERT INTO user_default_lists (user_id, shopping_list_id, created_at, updated_at)
			SELECT owner_id, id, NOW(), NOW() FROM shopping_lists WHERE is_default = true
			ON CONFLICT (user_id) DO NOTHING;
			ALTER TABLE shopping_lists DROP COLUMN is_default;
		END IF;
	END $$;`)

	db.Exec("DROP INDEX IF EXISTS uniq_user_default_list")

	log.Println("database migrated")
}
