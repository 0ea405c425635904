package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Reads return copies so service-side mutation is only observable through
// the write methods, mirroring how the real store behaves.
type stubRepo struct {
	markets   map[string]models.Market
	bets      map[string]models.Bet
	accounts  map[string]models.Account
	ledger    []models.LedgerEntry
	snapshots []models.OddsSnapshot
	records   []models.SettlementRecord
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		markets:  map[string]models.Market{},
		bets:     map[string]models.Bet{},
		accounts: map[string]models.Account{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateMarketTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	s.markets[market.ID] = *market
	return nil
}

func (s *stubRepo) GetMarketByID(ctx context.Context, id string) (*models.Market, error) {
	m, ok := s.markets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := m
	out.Outcomes = make([]models.Outcome, len(m.Outcomes))
	copy(out.Outcomes, m.Outcomes)
	return &out, nil
}

func (s *stubRepo) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, error) {
	var out []models.Market
	for _, m := range s.markets {
		out = append(out, m)
	}
	return out, nil
}

func (s *stubRepo) CountMarkets(ctx context.Context, params repository.ListMarketsParams) (int64, error) {
	return int64(len(s.markets)), nil
}

func (s *stubRepo) ListOpenMarkets(ctx context.Context) ([]models.Market, error) {
	var out []models.Market
	for _, m := range s.markets {
		if m.Status == "open" {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateMarketPricingTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	stored, ok := s.markets[market.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.TotalVolume = market.TotalVolume
	stored.Outcomes = make([]models.Outcome, len(market.Outcomes))
	copy(stored.Outcomes, market.Outcomes)
	s.markets[market.ID] = stored
	return nil
}

func (s *stubRepo) MarkMarketTerminalTx(ctx context.Context, tx *gorm.DB, market *models.Market) error {
	stored, ok := s.markets[market.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = market.Status
	stored.WinningOutcomeID = market.WinningOutcomeID
	stored.SettlementValue = market.SettlementValue
	stored.SettlementNotes = market.SettlementNotes
	stored.SettledAt = market.SettledAt
	s.markets[market.ID] = stored
	return nil
}

func (s *stubRepo) InsertBetTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error {
	s.bets[bet.ID] = *bet
	return nil
}

func (s *stubRepo) GetBetByID(ctx context.Context, id string) (*models.Bet, error) {
	b, ok := s.bets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := b
	return &out, nil
}

func (s *stubRepo) ListBets(ctx context.Context, params repository.ListBetsParams) ([]models.Bet, error) {
	var out []models.Bet
	for _, b := range s.bets {
		if params.MarketID != nil && b.MarketID != *params.MarketID {
			continue
		}
		if params.UserID != nil && b.UserID != *params.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *stubRepo) ListActiveBetsByMarket(ctx context.Context, marketID string) ([]models.Bet, error) {
	var out []models.Bet
	for _, b := range s.bets {
		if b.MarketID == marketID && b.Status == "active" {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateBetSettlementTx(ctx context.Context, tx *gorm.DB, bet *models.Bet) error {
	stored, ok := s.bets[bet.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = bet.Status
	stored.SettledAmount = bet.SettledAmount
	stored.ProfitLoss = bet.ProfitLoss
	stored.SettledAt = bet.SettledAt
	s.bets[bet.ID] = stored
	return nil
}

func (s *stubRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	if _, ok := s.accounts[account.UserID]; ok {
		return nil
	}
	s.accounts[account.UserID] = *account
	return nil
}

func (s *stubRepo) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	a, ok := s.accounts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := a
	return &out, nil
}

func (s *stubRepo) ApplyBalanceChangeTx(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error {
	account, ok := s.accounts[entry.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := account.Balance.Add(entry.Amount)
	if next.IsNegative() {
		return repository.ErrInsufficientFunds
	}
	account.Balance = next
	s.accounts[entry.UserID] = account
	entry.BalanceAfter = next
	s.ledger = append(s.ledger, *entry)
	return nil
}

func (s *stubRepo) ListLedgerEntries(ctx context.Context, userID string, limit int) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for _, e := range s.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubRepo) InsertOddsSnapshots(ctx context.Context, items []models.OddsSnapshot) error {
	s.snapshots = append(s.snapshots, items...)
	return nil
}

func (s *stubRepo) ListOddsSnapshots(ctx context.Context, marketID string, since time.Time, limit int) ([]models.OddsSnapshot, error) {
	var out []models.OddsSnapshot
	for _, snap := range s.snapshots {
		if snap.MarketID == marketID {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (s *stubRepo) DeleteOddsSnapshotsBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := s.snapshots[:0]
	var deleted int64
	for _, snap := range s.snapshots {
		if snap.RecordedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, snap)
	}
	s.snapshots = kept
	return deleted, nil
}

func (s *stubRepo) InsertSettlementRecordTx(ctx context.Context, tx *gorm.DB, record *models.SettlementRecord) error {
	s.records = append(s.records, *record)
	return nil
}

func (s *stubRepo) ListSettlementRecords(ctx context.Context, limit, offset int) ([]models.SettlementRecord, error) {
	return s.records, nil
}
