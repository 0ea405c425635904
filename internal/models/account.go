package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	UserID  string          `gorm:"primaryKey;type:text"`
	Balance decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

// LedgerEntry is one immutable balance movement. Amount is positive for
// credits and negative for debits; the running balance is recorded after
// the movement applies.
type LedgerEntry struct {
	ID       uint64  `gorm:"primaryKey;autoIncrement"`
	UserID   string  `gorm:"type:text;not null;index"`
	BetID    *string `gorm:"type:text;index"`
	MarketID *string `gorm:"type:text;index"`

	EntryType    string          `gorm:"type:varchar(20);not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Ledger entry types.
const (
	LedgerDeposit = "deposit"
	LedgerStake   = "stake"
	LedgerCashOut = "cash_out"
	LedgerPayout  = "payout"
	LedgerRefund  = "refund"
)
