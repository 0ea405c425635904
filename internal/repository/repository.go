package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// ErrInsufficientFunds is returned by ApplyBalanceChangeTx when a debit
// would take an account below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

type ListMarketsParams struct {
	Status   *string
	Category *string
	Limit    int
	Offset   int
	OrderBy  string
	Asc      *bool
}

type ListBetsParams struct {
	MarketID *string
	UserID   *string
	Status   *string
	Limit    int
	Offset   int
}

// Repository is the persistence surface consumed by the service layer.
// Tx variants run inside a caller-provided transaction so a trade's market
// update, bet insert and ledger movement commit atomically.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Markets. GetMarketByID preloads outcomes in pricing-vector order.
	CreateMarketTx(ctx context.Context, tx *gorm.DB, market *models.Market) error
	GetMarketByID(ctx context.Context, id string) (*models.Market, error)
	ListMarkets(ctx context.Context, params ListMarketsParams) ([]models.Market, error)
	CountMarkets(ctx context.Context, params ListMarketsParams) (int64, error)
	ListOpenMarkets(ctx context.Context) ([]models.Market, error)
	UpdateMarketPricingTx(ctx context.Context, tx *gorm.DB, market *models.Market) error
	MarkMarketTerminalTx(ctx context.Context, tx *gorm.DB, market *models.Market) error

	// Bets.
	InsertBetTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error
	GetBetByID(ctx context.Context, id string) (*models.Bet, error)
	ListBets(ctx context.Context, params ListBetsParams) ([]models.Bet, error)
	ListActiveBetsByMarket(ctx context.Context, marketID string) ([]models.Bet, error)
	UpdateBetSettlementTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error

	// Accounts and ledger.
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, userID string) (*models.Account, error)
	ApplyBalanceChangeTx(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error
	ListLedgerEntries(ctx context.Context, userID string, limit int) ([]models.LedgerEntry, error)

	// Odds history.
	InsertOddsSnapshots(ctx context.Context, items []models.OddsSnapshot) error
	ListOddsSnapshots(ctx context.Context, marketID string, since time.Time, limit int) ([]models.OddsSnapshot, error)
	DeleteOddsSnapshotsBefore(ctx context.Context, before time.Time) (int64, error)

	// Settlement audit.
	InsertSettlementRecordTx(ctx context.Context, tx *gorm.DB, record *models.SettlementRecord) error
	ListSettlementRecords(ctx context.Context, limit, offset int) ([]models.SettlementRecord, error)
}
