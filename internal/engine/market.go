// Package engine implements market lifecycle, bet execution and settlement
// for an LMSR-priced prediction market.
//
// The engine is a pure computation layer: every operation takes an explicit
// market/bet snapshot and returns a new one. There is no internal shared
// state and nothing here blocks or performs I/O, so the package is safe
// under any concurrency model. The one external hazard is concurrent
// PlaceBet calls against the same market: each call reads the quantity
// vector and returns a new one, so two interleaved calls silently lose a
// trade. Callers must serialize writers per market (the service layer does
// this with a per-market mutex); the engine does not enforce it.
package engine

import (
	"fmt"
	"math"
	"time"

	"sportsbook/internal/lmsr"
	"sportsbook/internal/odds"
)

// MarketStatus is the stored lifecycle state of a market. There is no
// stored "closed" state: a market past its close time is still Open in
// storage, and betting checks derive closedness from the clock.
type MarketStatus string

const (
	MarketOpen    MarketStatus = "open"
	MarketSettled MarketStatus = "settled"
	MarketVoided  MarketStatus = "voided"
)

// Outcome is one leg of a market. Quantity is the cumulative LMSR share
// count q_i and is the only mutable pricing state; DecimalOdds and
// ImpliedProbability are derived from the full quantity vector and are
// recomputed on every mutation, never written independently.
type Outcome struct {
	ID                 string
	Label              string
	Quantity           float64
	DecimalOdds        float64
	ImpliedProbability float64
}

// Market is an in-memory snapshot of one market. Outcome order is fixed at
// creation; it is the index space of the pricing vector.
type Market struct {
	ID                 string
	Outcomes           []Outcome
	LiquidityParameter float64
	TotalLiquidity     float64 // display figure: b * outcome count
	TotalVolume        float64
	Status             MarketStatus
	OpensAt            time.Time
	ClosesAt           time.Time

	// Populated only after settlement or void.
	WinningOutcomeID string
	SettlementValue  float64
	SettlementNotes  string
	SettledAt        time.Time
}

// OutcomeSpec names an outcome at market creation time.
type OutcomeSpec struct {
	ID    string
	Label string
}

// NewMarket builds an Open market with all quantities at zero, so the
// opening price vector is uniform. initialWeights is the collaborator-
// supplied probability vector (projections, standings, equal weighting);
// it is validated and recorded on the outcomes as the pre-trade implied
// probability for display, but it does not seed the quantity vector.
func NewMarket(id string, specs []OutcomeSpec, initialWeights []float64, b float64, opensAt, closesAt time.Time) (Market, error) {
	if len(specs) < 2 {
		return Market{}, fmt.Errorf("market needs at least 2 outcomes, got %d", len(specs))
	}
	if b <= 0 {
		return Market{}, fmt.Errorf("liquidity parameter must be positive, got %v", b)
	}
	if len(initialWeights) != len(specs) {
		return Market{}, fmt.Errorf("got %d initial weights for %d outcomes", len(initialWeights), len(specs))
	}
	sum := 0.0
	for _, w := range initialWeights {
		if w <= 0 || w >= 1 {
			return Market{}, fmt.Errorf("initial weight %v outside (0,1)", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return Market{}, fmt.Errorf("initial weights sum to %v, want 1", sum)
	}
	if !closesAt.After(opensAt) {
		return Market{}, fmt.Errorf("close time %v is not after open time %v", closesAt, opensAt)
	}

	m := Market{
		ID:                 id,
		Outcomes:           make([]Outcome, len(specs)),
		LiquidityParameter: b,
		TotalLiquidity:     b * float64(len(specs)),
		Status:             MarketOpen,
		OpensAt:            opensAt,
		ClosesAt:           closesAt,
	}
	for i, spec := range specs {
		m.Outcomes[i] = Outcome{
			ID:                 spec.ID,
			Label:              spec.Label,
			ImpliedProbability: initialWeights[i],
			DecimalOdds:        odds.PriceToDecimal(odds.Clamp(initialWeights[i])),
		}
	}
	return m, nil
}

// Quantities returns the market's pricing vector in outcome order.
func (m *Market) Quantities() []float64 {
	q := make([]float64, len(m.Outcomes))
	for i, o := range m.Outcomes {
		q[i] = o.Quantity
	}
	return q
}

// OutcomeIndex returns the position of an outcome id, or -1.
func (m *Market) OutcomeIndex(outcomeID string) int {
	for i, o := range m.Outcomes {
		if o.ID == outcomeID {
			return i
		}
	}
	return -1
}

// BettingOpen reports whether the market accepts bets at the given instant:
// stored status Open AND the close time has not passed.
func (m *Market) BettingOpen(now time.Time) bool {
	return m.Status == MarketOpen && now.Before(m.ClosesAt)
}

// Terminal reports whether the market reached a final state.
func (m *Market) Terminal() bool {
	return m.Status == MarketSettled || m.Status == MarketVoided
}

// refreshPricing recomputes every outcome's derived odds and probability
// from the current quantity vector. A trade on one outcome moves all of
// them, so this always runs over the whole market.
func (m *Market) refreshPricing() {
	prices := lmsr.Prices(m.Quantities(), m.LiquidityParameter)
	for i := range m.Outcomes {
		p := odds.Clamp(prices[i])
		m.Outcomes[i].ImpliedProbability = p
		m.Outcomes[i].DecimalOdds = odds.PriceToDecimal(p)
	}
}

// clone deep-copies the market so executor and settlement operations can
// return fresh snapshots without mutating their input.
func (m *Market) clone() Market {
	out := *m
	out.Outcomes = make([]Outcome, len(m.Outcomes))
	copy(out.Outcomes, m.Outcomes)
	return out
}
