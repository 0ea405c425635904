package models

import "time"

// OddsSnapshot is one point of a market's price history, recorded per
// outcome by the cron sweep and after each trade.
type OddsSnapshot struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID  string `gorm:"type:text;not null;index:idx_odds_market_time"`
	OutcomeID string `gorm:"type:text;not null;index"`

	ImpliedProbability float64 `gorm:"type:double precision;not null"`
	DecimalOdds        float64 `gorm:"type:double precision;not null"`

	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_odds_market_time"`
}

func (OddsSnapshot) TableName() string {
	return "odds_snapshots"
}
