package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SettlementRecord is the audit row written once per settle or void.
type SettlementRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID string `gorm:"type:text;not null;uniqueIndex"`

	// "settled" or "voided".
	Resolution       string  `gorm:"type:varchar(20);not null;index"`
	WinningOutcomeID *string `gorm:"type:text"`
	Reason           *string `gorm:"type:text"`

	BetsSettled  int             `gorm:"not null"`
	TotalPaidOut decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	// Final per-outcome price vector at resolution time.
	FinalPrices datatypes.JSON `gorm:"type:jsonb"`

	SettledAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (SettlementRecord) TableName() string {
	return "settlement_records"
}
