package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

// OddsRecorder sweeps every open market on a schedule and appends its
// current per-outcome prices to the history table, so charts have points
// even through quiet stretches with no trades. A second job trims history
// older than the retention window.
type OddsRecorder struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	Retention time.Duration
}

func (r *OddsRecorder) SnapshotOnce(ctx context.Context) error {
	if r == nil || r.Repo == nil {
		return errors.New("odds recorder not configured")
	}
	markets, err := r.Repo.ListOpenMarkets(ctx)
	if err != nil {
		return err
	}
	if len(markets) == 0 {
		return nil
	}

	now := time.Now().UTC()
	var items []models.OddsSnapshot
	for _, m := range markets {
		for _, o := range m.Outcomes {
			items = append(items, models.OddsSnapshot{
				MarketID:           m.ID,
				OutcomeID:          o.ID,
				ImpliedProbability: o.ImpliedProbability,
				DecimalOdds:        o.DecimalOdds,
				RecordedAt:         now,
			})
		}
	}
	if err := r.Repo.InsertOddsSnapshots(ctx, items); err != nil {
		return err
	}
	if r.Logger != nil {
		r.Logger.Debug("odds snapshot recorded",
			zap.Int("markets", len(markets)),
			zap.Int("points", len(items)))
	}
	return nil
}

func (r *OddsRecorder) PurgeOnce(ctx context.Context) error {
	if r == nil || r.Repo == nil {
		return errors.New("odds recorder not configured")
	}
	retention := r.Retention
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := r.Repo.DeleteOddsSnapshotsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 && r.Logger != nil {
		r.Logger.Info("odds history purged",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
