// Package lmsr implements the Logarithmic Market Scoring Rule cost and
// price functions for a multi-outcome automated market maker.
//
// Every function is pure given the share-quantity vector q and the
// liquidity parameter b. Callers must guarantee b > 0; the hot path does
// not re-validate it. The market maker's worst-case loss is bounded by
// b * ln(len(q)).
//
// Reference: Robin Hanson, "Logarithmic Market Scoring Rules for Modular
// Combinatorial Information Aggregation", 2003.
package lmsr

import "math"

// DefaultPrecision is the bracket width at which SharesToReceive stops
// refining, in share units.
const DefaultPrecision = 0.01

// Cost evaluates the LMSR cost function C(q) = b * ln(sum_i exp(q_i/b)).
//
// The max(q) subtraction is load-bearing: without it exp(q_i/b) overflows
// for realistic volumes (quantities in the thousands against a small b).
func Cost(q []float64, b float64) float64 {
	maxQ := q[0]
	for _, v := range q[1:] {
		if v > maxQ {
			maxQ = v
		}
	}
	sum := 0.0
	for _, v := range q {
		sum += math.Exp((v - maxQ) / b)
	}
	return b * (maxQ/b + math.Log(sum))
}

// Price returns the instantaneous price of outcome i, the softmax of q/b
// at index i. Prices lie in (0,1) and sum to 1 across outcomes.
func Price(q []float64, i int, b float64) float64 {
	maxQ := q[0]
	for _, v := range q[1:] {
		if v > maxQ {
			maxQ = v
		}
	}
	sum := 0.0
	for _, v := range q {
		sum += math.Exp((v - maxQ) / b)
	}
	return math.Exp((q[i]-maxQ)/b) / sum
}

// Prices returns the full price vector. It shares one pass over the
// exponential sum so pricing all outcomes is O(N) rather than O(N^2).
func Prices(q []float64, b float64) []float64 {
	maxQ := q[0]
	for _, v := range q[1:] {
		if v > maxQ {
			maxQ = v
		}
	}
	exps := make([]float64, len(q))
	sum := 0.0
	for i, v := range q {
		exps[i] = math.Exp((v - maxQ) / b)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

// CostToBuy returns the cost of acquiring shares of outcome i,
// C(q + shares*e_i) - C(q). Non-negative for shares >= 0 and strictly
// increasing in shares.
func CostToBuy(q []float64, i int, shares, b float64) float64 {
	before := Cost(q, b)
	bumped := make([]float64, len(q))
	copy(bumped, q)
	bumped[i] += shares
	return Cost(bumped, b) - before
}

// ProceedsFromSale returns the amount paid out for selling shares of
// outcome i back to the market maker, C(q) - C(q - shares*e_i).
func ProceedsFromSale(q []float64, i int, shares, b float64) float64 {
	before := Cost(q, b)
	reduced := make([]float64, len(q))
	copy(reduced, q)
	reduced[i] -= shares
	return before - Cost(reduced, b)
}

// SharesToReceive inverts CostToBuy for a fixed investment: it returns the
// share quantity s such that CostToBuy(q, i, s, b) == investment, to within
// precision. CostToBuy is strictly increasing in s, so a bisection over a
// valid bracket always converges.
//
// The initial upper bound of 100*investment is a heuristic, not a proof;
// a tiny b against a large investment can exceed it. The bound is doubled
// until it actually brackets the investment, so the search never returns
// an undershot answer for extreme low-liquidity markets.
func SharesToReceive(q []float64, i int, investment, b, precision float64) float64 {
	if investment <= 0 {
		return 0
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}

	hi := investment * 100
	for CostToBuy(q, i, hi, b) < investment {
		hi *= 2
	}

	lo := 0.0
	for hi-lo > precision {
		mid := (lo + hi) / 2
		if CostToBuy(q, i, mid, b) < investment {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
