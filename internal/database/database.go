package database

import (
	"log"

	"darely/config"
	"darely/internal/domain"
	"darely/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Room{},
		&models.InteractionRequest{},
		&models.QueueEntry{},
		&models.DarePrompt{},
		&models.Payment{},
		&models.Withdrawal{},
		&models.Notification{},
		&models.SystemSetting{},
	)
}

// SeedPrompts inserts a starter truth/dare pool when the table is empty.
func SeedPrompts(db *gorm.DB) {
	var count int64
	db.Model(&models.DarePrompt{}).Count(&count)
	if count > 0 {
		return
	}
	seed := []models.DarePrompt{
		{Kind: domain.KindSystemTruth, Tier: domain.TierBronze, Text: "What's the most embarrassing thing on your camera roll?", IsActive: true},
		{Kind: domain.KindSystemTruth, Tier: domain.TierSilver, Text: "Who was your first celebrity crush?", IsActive: true},
		{Kind: domain.KindSystemTruth, Tier: domain.TierGold, Text: "What's a secret you've never shared on stream?", IsActive: true},
		{Kind: domain.KindSystemDare, Tier: domain.TierBronze, Text: "Do your best impression of a viewer's comment.", IsActive: true},
		{Kind: domain.KindSystemDare, Tier: domain.TierSilver, Text: "Sing the chorus of the last song you listened to.", IsActive: true},
		{Kind: domain.KindSystemDare, Tier: domain.TierGold, Text: "Let chat pick your outfit for the next stream.", IsActive: true},
	}
	if err := db.Create(&seed).Error; err != nil {
		log.Printf("[Seed] prompt pool: %v", err)
	}
}
