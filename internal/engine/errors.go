package engine

import (
	"errors"
	"fmt"
)

// Betting and settlement rejections. All of these are recoverable business
// conditions the caller can surface to a client; contract violations
// (b <= 0, negative quantities) are not represented here.
var (
	ErrMarketNotOpen   = errors.New("market is not open")
	ErrMarketClosed    = errors.New("betting window has closed")
	ErrInvalidOutcome  = errors.New("outcome does not exist on this market")
	ErrInvalidAmount   = errors.New("stake amount is invalid")
	ErrZeroValue       = errors.New("cash-out value is zero")
	ErrBetNotActive    = errors.New("bet is no longer active")
	ErrAlreadyTerminal = errors.New("market is already settled or voided")
)

// SlippageError reports a trade rejected because it would move the price
// beyond the bettor's tolerance. It carries both figures so the caller can
// explain the rejection instead of returning a generic failure.
type SlippageError struct {
	Observed float64
	Max      float64
}

func (e *SlippageError) Error() string {
	return fmt.Sprintf("slippage %.4f exceeds maximum %.4f", e.Observed, e.Max)
}
