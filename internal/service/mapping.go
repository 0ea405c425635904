package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"sportsbook/internal/engine"
	"sportsbook/internal/models"
)

// marketToEngine builds the pure pricing snapshot from a stored market.
// Outcome order follows Idx, which is the market's pricing-vector order.
func marketToEngine(m *models.Market) engine.Market {
	outcomes := make([]models.Outcome, len(m.Outcomes))
	copy(outcomes, m.Outcomes)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Idx < outcomes[j].Idx })

	em := engine.Market{
		ID:                 m.ID,
		Outcomes:           make([]engine.Outcome, len(outcomes)),
		LiquidityParameter: m.LiquidityParameter,
		TotalLiquidity:     m.TotalLiquidity,
		TotalVolume:        m.TotalVolume.InexactFloat64(),
		Status:             engine.MarketStatus(m.Status),
		OpensAt:            m.OpensAt,
		ClosesAt:           m.ClosesAt,
	}
	for i, o := range outcomes {
		em.Outcomes[i] = engine.Outcome{
			ID:                 o.ID,
			Label:              o.Label,
			Quantity:           o.Quantity,
			DecimalOdds:        o.DecimalOdds,
			ImpliedProbability: o.ImpliedProbability,
		}
	}
	return em
}

// applyPricing copies the post-trade quantities and derived odds from an
// engine snapshot back onto the stored market, matching outcomes by id.
func applyPricing(m *models.Market, em engine.Market) {
	byID := make(map[string]engine.Outcome, len(em.Outcomes))
	for _, o := range em.Outcomes {
		byID[o.ID] = o
	}
	for i := range m.Outcomes {
		if o, ok := byID[m.Outcomes[i].ID]; ok {
			m.Outcomes[i].Quantity = o.Quantity
			m.Outcomes[i].DecimalOdds = o.DecimalOdds
			m.Outcomes[i].ImpliedProbability = o.ImpliedProbability
		}
	}
}

func betToModel(b engine.Bet, amount decimal.Decimal) models.Bet {
	return models.Bet{
		ID:                     b.ID,
		MarketID:               b.MarketID,
		OutcomeID:              b.OutcomeID,
		UserID:                 b.UserID,
		Amount:                 amount,
		OddsAtPlacement:        b.OddsAtPlacement,
		ProbabilityAtPlacement: b.ProbabilityAtPlacement,
		PotentialPayout:        b.PotentialPayout,
		Status:                 string(b.Status),
	}
}

func betToEngine(b *models.Bet) engine.Bet {
	return engine.Bet{
		ID:                     b.ID,
		MarketID:               b.MarketID,
		UserID:                 b.UserID,
		OutcomeID:              b.OutcomeID,
		Amount:                 b.Amount.InexactFloat64(),
		OddsAtPlacement:        b.OddsAtPlacement,
		ProbabilityAtPlacement: b.ProbabilityAtPlacement,
		PotentialPayout:        b.PotentialPayout,
		Status:                 engine.BetStatus(b.Status),
	}
}

// applySettlement writes an engine bet's terminal fields onto the stored row.
func applySettlement(row *models.Bet, b engine.Bet) {
	row.Status = string(b.Status)
	settled := decimal.NewFromFloat(b.SettledAmount)
	pl := decimal.NewFromFloat(b.ProfitLoss)
	row.SettledAmount = &settled
	row.ProfitLoss = &pl
	at := b.SettledAt
	row.SettledAt = &at
}
