package db

import (
	"sportsbook/internal/models"
)

// AutoMigrate creates or extends the schema for every persisted model.
// Outcomes must follow markets so the foreign key has a target.
func (d *DB) AutoMigrate() error {
	if d == nil || d.Gorm == nil {
		return ErrNotConnected
	}
	return d.Gorm.AutoMigrate(
		&models.Market{},
		&models.Outcome{},
		&models.Bet{},
		&models.Account{},
		&models.LedgerEntry{},
		&models.OddsSnapshot{},
		&models.SettlementRecord{},
	)
}
