package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- markets -----------------------------------------------------------------

func (s *Store) CreateMarketTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	if tx == nil || market == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(market).Error
}

func (s *Store) GetMarketByID(ctx context.Context, id string) (*models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var market models.Market
	err := s.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		First(&market, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

func (s *Store) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.marketQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Market
	err := query.
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountMarkets(ctx context.Context, params repository.ListMarketsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	if err := s.marketQuery(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) marketQuery(ctx context.Context, params repository.ListMarketsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Market{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(*params.Category))
	}
	return query
}

func (s *Store) ListOpenMarkets(ctx context.Context) ([]models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Market
	err := s.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		Where("status = ?", "open").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateMarketPricingTx persists a post-trade snapshot: market volume plus
// every outcome's quantity and derived pricing columns.
func (s *Store) UpdateMarketPricingTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	if tx == nil || market == nil {
		return nil
	}
	err := tx.WithContext(ctx).Model(&models.Market{}).
		Where("id = ?", market.ID).
		Updates(map[string]any{
			"total_volume": market.TotalVolume,
			"updated_at":   time.Now().UTC(),
		}).Error
	if err != nil {
		return err
	}
	for i := range market.Outcomes {
		o := &market.Outcomes[i]
		err = tx.WithContext(ctx).Model(&models.Outcome{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"quantity":            o.Quantity,
				"decimal_odds":        o.DecimalOdds,
				"implied_probability": o.ImpliedProbability,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) MarkMarketTerminalTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	if tx == nil || market == nil {
		return nil
	}
	return tx.WithContext(ctx).Model(&models.Market{}).
		Where("id = ?", market.ID).
		Updates(map[string]any{
			"status":             market.Status,
			"winning_outcome_id": market.WinningOutcomeID,
			"settlement_value":   market.SettlementValue,
			"settlement_notes":   market.SettlementNotes,
			"settled_at":         market.SettledAt,
		}).Error
}

// --- bets --------------------------------------------------------------------

func (s *Store) InsertBetTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error {
	if tx == nil || bet == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(bet).Error
}

func (s *Store) GetBetByID(ctx context.Context, id string) (*models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var bet models.Bet
	if err := s.db.WithContext(ctx).First(&bet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bet, nil
}

func (s *Store) ListBets(ctx context.Context, params repository.ListBetsParams) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Bet{})
	if params.MarketID != nil && strings.TrimSpace(*params.MarketID) != "" {
		query = query.Where("market_id = ?", strings.TrimSpace(*params.MarketID))
	}
	if params.UserID != nil && strings.TrimSpace(*params.UserID) != "" {
		query = query.Where("user_id = ?", strings.TrimSpace(*params.UserID))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Bet
	if err := query.Order("placed_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveBetsByMarket(ctx context.Context, marketID string) ([]models.Bet, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bet
	err := s.db.WithContext(ctx).
		Where("market_id = ? AND status = ?", marketID, "active").
		Order("placed_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateBetSettlementTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error {
	if tx == nil || bet == nil {
		return nil
	}
	return tx.WithContext(ctx).Model(&models.Bet{}).
		Where("id = ?", bet.ID).
		Updates(map[string]any{
			"status":         bet.Status,
			"settled_amount": bet.SettledAmount,
			"profit_loss":    bet.ProfitLoss,
			"settled_at":     bet.SettledAt,
		}).Error
}

// --- accounts & ledger ---------------------------------------------------------

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	if s == nil || s.db == nil || account == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(account).Error
}

func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ApplyBalanceChangeTx locks the account row, applies the signed amount and
// appends the ledger entry with the resulting balance. A debit that would
// take the balance negative fails with repository.ErrInsufficientFunds.
func (s *Store) ApplyBalanceChangeTx(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error {
	if tx == nil || entry == nil {
		return nil
	}
	var account models.Account
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "user_id = ?", entry.UserID).Error
	if err != nil {
		return err
	}

	next := account.Balance.Add(entry.Amount)
	if next.IsNegative() {
		return repository.ErrInsufficientFunds
	}

	err = tx.WithContext(ctx).Model(&models.Account{}).
		Where("user_id = ?", entry.UserID).
		Update("balance", next).Error
	if err != nil {
		return err
	}

	entry.BalanceAfter = next
	return tx.WithContext(ctx).Create(entry).Error
}

func (s *Store) ListLedgerEntries(ctx context.Context, userID string, limit int) ([]models.LedgerEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit, 100)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- odds history --------------------------------------------------------------

func (s *Store) InsertOddsSnapshots(ctx context.Context, items []models.OddsSnapshot) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(items, 500).Error
}

func (s *Store) ListOddsSnapshots(ctx context.Context, marketID string, since time.Time, limit int) ([]models.OddsSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Where("market_id = ?", marketID)
	if !since.IsZero() {
		query = query.Where("recorded_at >= ?", since)
	}
	var items []models.OddsSnapshot
	err := query.Order("recorded_at ASC").Limit(normalizeLimit(limit, maxListLimit)).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteOddsSnapshotsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("recorded_at < ?", before).
		Delete(&models.OddsSnapshot{})
	return res.RowsAffected, res.Error
}

// --- settlement audit ------------------------------------------------------------

func (s *Store) InsertSettlementRecordTx(ctx context.Context, tx *gorm.DB, record *models.SettlementRecord) error {
	if tx == nil || record == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(record).Error
}

func (s *Store) ListSettlementRecords(ctx context.Context, limit, offset int) ([]models.SettlementRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SettlementRecord
	err := s.db.WithContext(ctx).
		Order("settled_at DESC").
		Limit(normalizeLimit(limit, 100)).
		Offset(normalizeOffset(offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ---------------------------------------------------------------------

// maxListLimit caps every list query, fallbacks included.
const maxListLimit = 1000

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	switch column {
	case "created_at", "closes_at", "total_volume":
	default:
		column = fallback
	}
	direction := "DESC"
	if asc != nil && *asc {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}
