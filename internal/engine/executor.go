package engine

import (
	"math"
	"time"

	"sportsbook/internal/lmsr"
	"sportsbook/internal/odds"
)

// Execution defaults. Services override them from configuration.
const (
	DefaultMaxSlippage = 0.05
	DefaultCashOutFee  = 0.02
)

// BetStatus is the lifecycle state of a bet. A bet leaves Active exactly
// once, via cash-out, settlement or void.
type BetStatus string

const (
	BetActive    BetStatus = "active"
	BetWon       BetStatus = "won"
	BetLost      BetStatus = "lost"
	BetRefunded  BetStatus = "refunded"
	BetCashedOut BetStatus = "cashed_out"
)

// Bet records one wager. PotentialPayout is the share count acquired at
// placement; one share pays one unit if its outcome wins.
type Bet struct {
	ID                     string
	MarketID               string
	UserID                 string
	OutcomeID              string
	Amount                 float64
	OddsAtPlacement        float64
	ProbabilityAtPlacement float64
	PotentialPayout        float64
	Status                 BetStatus

	// Populated when the bet reaches a terminal status.
	SettledAmount float64
	ProfitLoss    float64
	SettledAt     time.Time
}

// PlaceBetParams carries one bet request into the executor.
type PlaceBetParams struct {
	BetID       string
	UserID      string
	OutcomeID   string
	Amount      float64
	MaxSlippage float64 // <= 0 means DefaultMaxSlippage
	Precision   float64 // <= 0 means lmsr.DefaultPrecision
	Now         time.Time
}

// Trade is the result of a successful placement: the bet and the
// post-trade market snapshot with every outcome repriced.
type Trade struct {
	Bet    Bet
	Market Market
}

// PlaceBet validates and executes a bet against the market snapshot.
// Checks run in a fixed order and the first failure wins: status, betting
// window, outcome existence, stake, slippage. On success it returns a new
// market snapshot; persisting it and debiting the stake are the caller's
// concern, and concurrent placements against the same market must be
// serialized by the caller.
func PlaceBet(m Market, p PlaceBetParams) (Trade, error) {
	if m.Status != MarketOpen {
		return Trade{}, ErrMarketNotOpen
	}
	if !p.Now.Before(m.ClosesAt) {
		return Trade{}, ErrMarketClosed
	}
	idx := m.OutcomeIndex(p.OutcomeID)
	if idx < 0 {
		return Trade{}, ErrInvalidOutcome
	}

	maxSlippage := p.MaxSlippage
	if maxSlippage <= 0 {
		maxSlippage = DefaultMaxSlippage
	}

	b := m.LiquidityParameter
	q := m.Quantities()
	currentPrice := lmsr.Price(q, idx, b)

	shares := lmsr.SharesToReceive(q, idx, p.Amount, b, p.Precision)
	if shares <= 0 {
		return Trade{}, ErrInvalidAmount
	}

	q[idx] += shares
	newPrice := lmsr.Price(q, idx, b)
	slippage := (newPrice - currentPrice) / currentPrice
	if slippage > maxSlippage {
		return Trade{}, &SlippageError{Observed: slippage, Max: maxSlippage}
	}

	updated := m.clone()
	updated.Outcomes[idx].Quantity += shares
	updated.TotalVolume += p.Amount
	updated.refreshPricing()

	clamped := odds.Clamp(currentPrice)
	bet := Bet{
		ID:                     p.BetID,
		MarketID:               m.ID,
		UserID:                 p.UserID,
		OutcomeID:              p.OutcomeID,
		Amount:                 p.Amount,
		OddsAtPlacement:        odds.PriceToDecimal(clamped),
		ProbabilityAtPlacement: clamped,
		PotentialPayout:        shares,
		Status:                 BetActive,
	}
	return Trade{Bet: bet, Market: updated}, nil
}

// Quote prices a hypothetical bet without executing it.
type Quote struct {
	Shares       float64
	CurrentPrice float64
	NewPrice     float64
	Slippage     float64
	AveragePrice float64
}

// QuoteBet runs the pricing half of PlaceBet and reports what the bettor
// would get. It applies the same existence and window checks but not the
// slippage limit; the quote carries the slippage for display instead.
func QuoteBet(m Market, outcomeID string, amount float64, now time.Time) (Quote, error) {
	if m.Status != MarketOpen {
		return Quote{}, ErrMarketNotOpen
	}
	if !now.Before(m.ClosesAt) {
		return Quote{}, ErrMarketClosed
	}
	idx := m.OutcomeIndex(outcomeID)
	if idx < 0 {
		return Quote{}, ErrInvalidOutcome
	}
	if amount <= 0 {
		return Quote{}, ErrInvalidAmount
	}

	b := m.LiquidityParameter
	q := m.Quantities()
	currentPrice := lmsr.Price(q, idx, b)
	shares := lmsr.SharesToReceive(q, idx, amount, b, 0)
	if shares <= 0 {
		return Quote{}, ErrInvalidAmount
	}
	q[idx] += shares
	newPrice := lmsr.Price(q, idx, b)

	return Quote{
		Shares:       shares,
		CurrentPrice: currentPrice,
		NewPrice:     newPrice,
		Slippage:     (newPrice - currentPrice) / currentPrice,
		AveragePrice: amount / shares,
	}, nil
}

// CashOutValue marks a bet to market: shares held times the current price
// of the bet's outcome, net of the cash-out fee, rounded to cents and
// floored at zero. A bet that is no longer active, or a market that is no
// longer open, values at zero.
func CashOutValue(m Market, bet Bet, fee float64) float64 {
	if bet.Status != BetActive || m.Status != MarketOpen {
		return 0
	}
	if fee <= 0 {
		fee = DefaultCashOutFee
	}
	idx := m.OutcomeIndex(bet.OutcomeID)
	if idx < 0 {
		return 0
	}
	price := lmsr.Price(m.Quantities(), idx, m.LiquidityParameter)
	value := bet.PotentialPayout * price * (1 - fee)
	value = math.Round(value*100) / 100
	if value < 0 {
		return 0
	}
	return value
}

// ExecuteCashOut closes an active position at its current marked value.
// A bet already out of Active is rejected with ErrBetNotActive; a worthless
// position with ErrZeroValue. The market's quantity vector is left
// untouched: the position is bought out by the house at the marked price
// rather than sold back through the pricing curve.
func ExecuteCashOut(m Market, bet Bet, fee float64, now time.Time) (Bet, error) {
	if bet.Status != BetActive {
		return Bet{}, ErrBetNotActive
	}
	if m.Status != MarketOpen {
		return Bet{}, ErrMarketNotOpen
	}
	value := CashOutValue(m, bet, fee)
	if value <= 0 {
		return Bet{}, ErrZeroValue
	}
	out := bet
	out.Status = BetCashedOut
	out.SettledAmount = value
	out.ProfitLoss = value - bet.Amount
	out.SettledAt = now
	return out, nil
}
