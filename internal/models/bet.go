package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bet struct {
	ID        string `gorm:"primaryKey;type:text"`
	MarketID  string `gorm:"type:text;not null;index"`
	OutcomeID string `gorm:"type:text;not null;index"`
	UserID    string `gorm:"type:text;not null;index"`

	Amount                 decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	OddsAtPlacement        float64         `gorm:"type:double precision;not null"`
	ProbabilityAtPlacement float64         `gorm:"type:double precision;not null"`
	// Shares acquired; one share pays one unit if the outcome wins.
	PotentialPayout float64 `gorm:"type:double precision;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'active';index"`

	SettledAmount *decimal.Decimal `gorm:"type:numeric(30,10)"`
	ProfitLoss    *decimal.Decimal `gorm:"type:numeric(30,10)"`
	SettledAt     *time.Time       `gorm:"type:timestamptz"`

	PlacedAt  time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Bet) TableName() string {
	return "bets"
}
