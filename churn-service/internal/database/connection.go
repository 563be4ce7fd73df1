package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/config"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
)

// Connect подключается к базе данных
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настроить connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// RunMigrations выполняет миграции базы данных
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.PredictionBatch{},
		&models.PredictionOutcome{},
	)
	if err != nil {
		return fmt.Errorf("ошибка миграции: %w", err)
	}
	return nil
}
