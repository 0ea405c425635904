package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/config"
	"sportsbook/internal/engine"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
	"sportsbook/internal/weights"
)

var ErrMarketNotFound = errors.New("market not found")

type MarketService struct {
	Repo   repository.Repository
	Logger *zap.Logger
	Cfg    config.MarketConfig
}

type OutcomeInput struct {
	Label string
}

// CreateMarketParams describes a new market. InitialWeights is optional:
// when empty the outcomes open equally weighted. Liquidity <= 0 falls back
// to the configured default.
type CreateMarketParams struct {
	Title          string
	Category       string
	Outcomes       []OutcomeInput
	InitialWeights []float64
	Liquidity      float64
	OpensAt        time.Time
	ClosesAt       time.Time
}

func (s *MarketService) CreateMarket(ctx context.Context, params CreateMarketParams) (*models.Market, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("market service not configured")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, errors.New("title is required")
	}

	b := params.Liquidity
	if b <= 0 {
		b = s.Cfg.DefaultLiquidity
	}
	w := params.InitialWeights
	if len(w) == 0 {
		var err error
		w, err = weights.Equal(len(params.Outcomes))
		if err != nil {
			return nil, err
		}
	}
	opensAt := params.OpensAt
	if opensAt.IsZero() {
		opensAt = time.Now().UTC()
	}

	specs := make([]engine.OutcomeSpec, len(params.Outcomes))
	for i, o := range params.Outcomes {
		if strings.TrimSpace(o.Label) == "" {
			return nil, fmt.Errorf("outcome %d has no label", i)
		}
		specs[i] = engine.OutcomeSpec{ID: uuid.NewString(), Label: o.Label}
	}

	em, err := engine.NewMarket(uuid.NewString(), specs, w, b, opensAt, params.ClosesAt)
	if err != nil {
		return nil, err
	}

	weightsJSON, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}

	row := &models.Market{
		ID:                 em.ID,
		Title:              strings.TrimSpace(params.Title),
		Category:           strings.TrimSpace(params.Category),
		LiquidityParameter: em.LiquidityParameter,
		TotalLiquidity:     em.TotalLiquidity,
		Status:             string(em.Status),
		OpensAt:            em.OpensAt,
		ClosesAt:           em.ClosesAt,
		InitialWeights:     weightsJSON,
		Outcomes:           make([]models.Outcome, len(em.Outcomes)),
	}
	for i, o := range em.Outcomes {
		row.Outcomes[i] = models.Outcome{
			ID:                 o.ID,
			MarketID:           em.ID,
			Idx:                i,
			Label:              o.Label,
			Quantity:           o.Quantity,
			DecimalOdds:        o.DecimalOdds,
			ImpliedProbability: o.ImpliedProbability,
		}
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreateMarketTx(ctx, tx, row)
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("market created",
			zap.String("market_id", row.ID),
			zap.Int("outcomes", len(row.Outcomes)),
			zap.Float64("liquidity", b))
	}
	return row, nil
}

func (s *MarketService) GetMarket(ctx context.Context, id string) (*models.Market, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("market service not configured")
	}
	m, err := s.Repo.GetMarketByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMarketNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MarketService) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("market service not configured")
	}
	items, err := s.Repo.ListMarkets(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountMarkets(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// OddsHistory returns the recorded price points for one market since the
// given instant; a zero since returns everything retained.
func (s *MarketService) OddsHistory(ctx context.Context, marketID string, since time.Time, limit int) ([]models.OddsSnapshot, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("market service not configured")
	}
	return s.Repo.ListOddsSnapshots(ctx, marketID, since, limit)
}
