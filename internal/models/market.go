package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Market struct {
	ID                 string          `gorm:"primaryKey;type:text"`
	Title              string          `gorm:"type:text;not null"`
	Category           string          `gorm:"type:varchar(50);index"`
	LiquidityParameter float64         `gorm:"type:double precision;not null"`
	TotalLiquidity     float64         `gorm:"type:double precision;not null"`
	TotalVolume        decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Status             string          `gorm:"type:varchar(20);not null;default:'open';index"`

	OpensAt  time.Time `gorm:"type:timestamptz;not null"`
	ClosesAt time.Time `gorm:"type:timestamptz;not null;index"`

	// Initial probability vector the market was created with, kept for audit.
	InitialWeights datatypes.JSON `gorm:"type:jsonb"`

	WinningOutcomeID *string    `gorm:"type:text"`
	SettlementValue  *float64   `gorm:"type:double precision"`
	SettlementNotes  *string    `gorm:"type:text"`
	SettledAt        *time.Time `gorm:"type:timestamptz"`

	Outcomes []Outcome `gorm:"foreignKey:MarketID;references:ID"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Market) TableName() string {
	return "markets"
}

// Outcome order is significant: Idx is the outcome's fixed position in the
// market's pricing vector. Quantity is the LMSR share count and the only
// pricing source of truth; DecimalOdds and ImpliedProbability are derived
// columns rewritten on every trade.
type Outcome struct {
	ID       string `gorm:"primaryKey;type:text"`
	MarketID string `gorm:"type:text;not null;index"`
	Idx      int    `gorm:"not null"`
	Label    string `gorm:"type:text;not null"`

	Quantity           float64 `gorm:"type:double precision;not null;default:0"`
	DecimalOdds        float64 `gorm:"type:double precision;not null"`
	ImpliedProbability float64 `gorm:"type:double precision;not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Outcome) TableName() string {
	return "market_outcomes"
}
