package db

import (
	"zellalite/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.User{},
		&models.Instrument{},
		&models.Trade{},
		&models.Execution{},
		&models.Tag{},
		&models.TradeTag{},
		&models.JournalEntry{},
		&models.Attachment{},
		&models.MetricSnapshot{},
	)
}
