package database

import (
	"fmt"

	"benchracers_backend/internal/config"
	"benchracers_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфига
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Entry{},
		&models.EntryPhoto{},
		&models.Mod{},
		&models.EntryMod{},
		&models.Tag{},
		&models.EntryTag{},
		&models.EntryUpvote{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Award{},
		&models.Report{},
	)
}

// DropAll сбрасывает все таблицы. Используется только админским
// reset-эндпоинтом и тестовым окружением.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.Report{},
		&models.Award{},
		&models.CommentLike{},
		&models.Comment{},
		&models.EntryUpvote{},
		&models.EntryTag{},
		&models.Tag{},
		&models.EntryMod{},
		&models.Mod{},
		&models.EntryPhoto{},
		&models.Entry{},
		&models.User{},
	)
}
