package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/config"
	"sportsbook/internal/engine"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

var ErrBetNotFound = errors.New("bet not found")

// OddsBroadcaster pushes post-trade prices to live subscribers. The ws hub
// implements it; a nil broadcaster disables pushes.
type OddsBroadcaster interface {
	PublishMarket(m *models.Market)
}

type BettingService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Cfg       config.MarketConfig
	Broadcast OddsBroadcaster

	locks *MarketLocks
}

// NewBettingService wires the betting path. locks must be the same instance
// the settlement service uses, so placements serialize against resolutions
// on the same market; a nil locks gets a private instance, which is only
// safe when nothing else writes markets.
func NewBettingService(repo repository.Repository, logger *zap.Logger, cfg config.MarketConfig, broadcast OddsBroadcaster, locks *MarketLocks) *BettingService {
	if locks == nil {
		locks = NewMarketLocks()
	}
	return &BettingService{
		Repo:      repo,
		Logger:    logger,
		Cfg:       cfg,
		Broadcast: broadcast,
		locks:     locks,
	}
}

type PlaceBetRequest struct {
	MarketID    string
	UserID      string
	OutcomeID   string
	Amount      decimal.Decimal
	MaxSlippage float64 // <= 0 uses the configured default
}

// PlaceBet executes a bet end to end: price it through the engine, debit the
// stake, persist the bet and the repriced market atomically, then push the
// new odds to subscribers. The market's writer lock is held across the whole
// load-compute-persist sequence.
func (s *BettingService) PlaceBet(ctx context.Context, req PlaceBetRequest) (*models.Bet, *models.Market, error) {
	if s == nil || s.Repo == nil {
		return nil, nil, errors.New("betting service not configured")
	}
	if !req.Amount.IsPositive() {
		return nil, nil, engine.ErrInvalidAmount
	}

	unlock := s.locks.Lock(req.MarketID)
	defer unlock()

	market, err := s.Repo.GetMarketByID(ctx, req.MarketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrMarketNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	maxSlippage := req.MaxSlippage
	if maxSlippage <= 0 {
		maxSlippage = s.Cfg.MaxSlippage
	}

	now := time.Now().UTC()
	trade, err := engine.PlaceBet(marketToEngine(market), engine.PlaceBetParams{
		BetID:       uuid.NewString(),
		UserID:      req.UserID,
		OutcomeID:   req.OutcomeID,
		Amount:      req.Amount.InexactFloat64(),
		MaxSlippage: maxSlippage,
		Precision:   s.Cfg.SharePrecision,
		Now:         now,
	})
	if err != nil {
		return nil, nil, err
	}

	bet := betToModel(trade.Bet, req.Amount)
	bet.PlacedAt = now
	applyPricing(market, trade.Market)
	market.TotalVolume = market.TotalVolume.Add(req.Amount)

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		stake := &models.LedgerEntry{
			UserID:    req.UserID,
			BetID:     &bet.ID,
			MarketID:  &market.ID,
			EntryType: models.LedgerStake,
			Amount:    req.Amount.Neg(),
		}
		if err := s.Repo.ApplyBalanceChangeTx(ctx, tx, stake); err != nil {
			return err
		}
		if err := s.Repo.InsertBetTx(ctx, tx, &bet); err != nil {
			return err
		}
		return s.Repo.UpdateMarketPricingTx(ctx, tx, market)
	})
	if err != nil {
		return nil, nil, err
	}

	s.recordSnapshot(ctx, market, now)
	if s.Broadcast != nil {
		s.Broadcast.PublishMarket(market)
	}
	if s.Logger != nil {
		s.Logger.Info("bet placed",
			zap.String("bet_id", bet.ID),
			zap.String("market_id", market.ID),
			zap.String("outcome_id", req.OutcomeID),
			zap.String("amount", req.Amount.String()),
			zap.Float64("shares", bet.PotentialPayout))
	}
	return &bet, market, nil
}

// Quote prices a hypothetical bet without touching the book.
func (s *BettingService) Quote(ctx context.Context, marketID, outcomeID string, amount decimal.Decimal) (engine.Quote, error) {
	if s == nil || s.Repo == nil {
		return engine.Quote{}, errors.New("betting service not configured")
	}
	market, err := s.Repo.GetMarketByID(ctx, marketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.Quote{}, ErrMarketNotFound
	}
	if err != nil {
		return engine.Quote{}, err
	}
	return engine.QuoteBet(marketToEngine(market), outcomeID, amount.InexactFloat64(), time.Now().UTC())
}

// CashOutValue marks a bet to market without executing anything.
func (s *BettingService) CashOutValue(ctx context.Context, betID string) (decimal.Decimal, error) {
	if s == nil || s.Repo == nil {
		return decimal.Zero, errors.New("betting service not configured")
	}
	bet, err := s.Repo.GetBetByID(ctx, betID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrBetNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	market, err := s.Repo.GetMarketByID(ctx, bet.MarketID)
	if err != nil {
		return decimal.Zero, err
	}
	value := engine.CashOutValue(marketToEngine(market), betToEngine(bet), s.Cfg.CashOutFee)
	return decimal.NewFromFloat(value), nil
}

// CashOut closes an active position at its marked value. The position is
// bought out by the house, so the market's quantities and prices do not
// move; only the bet row and the bettor's balance change.
func (s *BettingService) CashOut(ctx context.Context, betID string) (*models.Bet, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("betting service not configured")
	}
	bet, err := s.Repo.GetBetByID(ctx, betID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(bet.MarketID)
	defer unlock()

	market, err := s.Repo.GetMarketByID(ctx, bet.MarketID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out, err := engine.ExecuteCashOut(marketToEngine(market), betToEngine(bet), s.Cfg.CashOutFee, now)
	if err != nil {
		return nil, err
	}
	applySettlement(bet, out)

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateBetSettlementTx(ctx, tx, bet); err != nil {
			return err
		}
		credit := &models.LedgerEntry{
			UserID:    bet.UserID,
			BetID:     &bet.ID,
			MarketID:  &bet.MarketID,
			EntryType: models.LedgerCashOut,
			Amount:    *bet.SettledAmount,
		}
		return s.Repo.ApplyBalanceChangeTx(ctx, tx, credit)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("bet cashed out",
			zap.String("bet_id", bet.ID),
			zap.String("market_id", bet.MarketID),
			zap.String("value", bet.SettledAmount.String()))
	}
	return bet, nil
}

func (s *BettingService) GetBet(ctx context.Context, betID string) (*models.Bet, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("betting service not configured")
	}
	bet, err := s.Repo.GetBetByID(ctx, betID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBetNotFound
	}
	return bet, err
}

func (s *BettingService) ListBets(ctx context.Context, params repository.ListBetsParams) ([]models.Bet, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("betting service not configured")
	}
	return s.Repo.ListBets(ctx, params)
}

// recordSnapshot appends one odds-history point per outcome. History is best
// effort; a failure is logged, never surfaced to the bettor.
func (s *BettingService) recordSnapshot(ctx context.Context, market *models.Market, at time.Time) {
	items := make([]models.OddsSnapshot, 0, len(market.Outcomes))
	for _, o := range market.Outcomes {
		items = append(items, models.OddsSnapshot{
			MarketID:           market.ID,
			OutcomeID:          o.ID,
			ImpliedProbability: o.ImpliedProbability,
			DecimalOdds:        o.DecimalOdds,
			RecordedAt:         at,
		})
	}
	if err := s.Repo.InsertOddsSnapshots(ctx, items); err != nil && s.Logger != nil {
		s.Logger.Warn("odds snapshot insert failed", zap.String("market_id", market.ID), zap.Error(err))
	}
}
