package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/engine"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type SettlementService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Broadcast OddsBroadcaster

	locks *MarketLocks
}

// NewSettlementService wires market resolution. locks must be the same
// instance the betting service uses: a placement that slips between the
// active-bet read and the terminal write would be debited and then stranded
// on a settled market. A nil locks gets a private instance.
func NewSettlementService(repo repository.Repository, logger *zap.Logger, broadcast OddsBroadcaster, locks *MarketLocks) *SettlementService {
	if locks == nil {
		locks = NewMarketLocks()
	}
	return &SettlementService{
		Repo:      repo,
		Logger:    logger,
		Broadcast: broadcast,
		locks:     locks,
	}
}

// Settle resolves a market to its winning outcome, pays every winning bet
// its full share count and writes the audit record, all in one transaction.
func (s *SettlementService) Settle(ctx context.Context, marketID, winningOutcomeID string) (*models.Market, error) {
	return s.resolve(ctx, marketID, func(em engine.Market, bets []engine.Bet, now time.Time) (engine.SettlementResult, error) {
		return engine.SettleMarket(em, winningOutcomeID, bets, now)
	})
}

// Void cancels a market and refunds every active stake in full. Allowed any
// time before the market reaches a terminal state, including after close.
func (s *SettlementService) Void(ctx context.Context, marketID, reason string) (*models.Market, error) {
	return s.resolve(ctx, marketID, func(em engine.Market, bets []engine.Bet, now time.Time) (engine.SettlementResult, error) {
		return engine.VoidMarket(em, bets, reason, now)
	})
}

func (s *SettlementService) resolve(ctx context.Context, marketID string, run func(engine.Market, []engine.Bet, time.Time) (engine.SettlementResult, error)) (*models.Market, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("settlement service not configured")
	}

	unlock := s.locks.Lock(marketID)
	defer unlock()

	market, err := s.Repo.GetMarketByID(ctx, marketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMarketNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListActiveBetsByMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	bets := make([]engine.Bet, len(rows))
	for i := range rows {
		bets[i] = betToEngine(&rows[i])
	}

	now := time.Now().UTC()
	result, err := run(marketToEngine(market), bets, now)
	if err != nil {
		return nil, err
	}

	market.Status = string(result.Market.Status)
	market.SettledAt = &now
	if result.Market.WinningOutcomeID != "" {
		market.WinningOutcomeID = &result.Market.WinningOutcomeID
		v := result.Market.SettlementValue
		market.SettlementValue = &v
	}
	if result.Market.SettlementNotes != "" {
		notes := result.Market.SettlementNotes
		market.SettlementNotes = &notes
	}

	record, err := s.buildRecord(market, result, now)
	if err != nil {
		return nil, err
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.MarkMarketTerminalTx(ctx, tx, market); err != nil {
			return err
		}
		for i := range result.Bets {
			b := result.Bets[i]
			row := &rows[i]
			applySettlement(row, b)
			if err := s.Repo.UpdateBetSettlementTx(ctx, tx, row); err != nil {
				return err
			}
			if b.SettledAmount <= 0 {
				continue
			}
			entryType := models.LedgerPayout
			if b.Status == engine.BetRefunded {
				entryType = models.LedgerRefund
			}
			credit := &models.LedgerEntry{
				UserID:    row.UserID,
				BetID:     &row.ID,
				MarketID:  &market.ID,
				EntryType: entryType,
				Amount:    *row.SettledAmount,
			}
			if err := s.Repo.ApplyBalanceChangeTx(ctx, tx, credit); err != nil {
				return err
			}
		}
		return s.Repo.InsertSettlementRecordTx(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	if s.Broadcast != nil {
		s.Broadcast.PublishMarket(market)
	}
	if s.Logger != nil {
		s.Logger.Info("market resolved",
			zap.String("market_id", market.ID),
			zap.String("resolution", record.Resolution),
			zap.Int("bets_settled", record.BetsSettled),
			zap.String("total_paid_out", record.TotalPaidOut.String()))
	}
	return market, nil
}

func (s *SettlementService) buildRecord(market *models.Market, result engine.SettlementResult, now time.Time) (*models.SettlementRecord, error) {
	prices := make(map[string]float64, len(market.Outcomes))
	for _, o := range market.Outcomes {
		prices[o.ID] = o.ImpliedProbability
	}
	pricesJSON, err := json.Marshal(prices)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	settled := 0
	for _, b := range result.Bets {
		settled++
		if b.SettledAmount > 0 {
			total = total.Add(decimal.NewFromFloat(b.SettledAmount))
		}
	}

	resolution := "settled"
	if result.Market.Status == engine.MarketVoided {
		resolution = "voided"
	}
	return &models.SettlementRecord{
		MarketID:         market.ID,
		Resolution:       resolution,
		WinningOutcomeID: market.WinningOutcomeID,
		Reason:           market.SettlementNotes,
		BetsSettled:      settled,
		TotalPaidOut:     total,
		FinalPrices:      pricesJSON,
		SettledAt:        now,
	}, nil
}

func (s *SettlementService) ListRecords(ctx context.Context, limit, offset int) ([]models.SettlementRecord, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("settlement service not configured")
	}
	return s.Repo.ListSettlementRecords(ctx, limit, offset)
}
