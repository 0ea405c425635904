// Package weights derives the initial outcome-probability vector a market
// is created with. Suppliers are pure functions of external signals
// (projection scores, standings records) and always return a vector that
// sums to 1 with every entry inside (0,1).
package weights

import "fmt"

// floor keeps every outcome's weight away from 0 so longshots stay
// priceable after odds conversion.
const floor = 0.001

// Equal returns the uniform vector for n outcomes.
func Equal(n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 outcomes, got %d", n)
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	return w, nil
}

// FromProjections normalizes non-negative projection scores (power
// ratings, simulated win counts) into probabilities. Zero scores are
// floored rather than dropped so every outcome stays bettable.
func FromProjections(scores []float64) ([]float64, error) {
	if len(scores) < 2 {
		return nil, fmt.Errorf("need at least 2 scores, got %d", len(scores))
	}
	total := 0.0
	for i, s := range scores {
		if s < 0 {
			return nil, fmt.Errorf("score[%d]=%v is negative", i, s)
		}
		total += s
	}
	if total == 0 {
		return Equal(len(scores))
	}
	w := make([]float64, len(scores))
	adj := 0.0
	for i, s := range scores {
		w[i] = s / total
		if w[i] < floor {
			adj += floor - w[i]
			w[i] = floor
		}
	}
	// Take the floor adjustment out of the largest weight.
	if adj > 0 {
		maxIdx := 0
		for i := range w {
			if w[i] > w[maxIdx] {
				maxIdx = i
			}
		}
		w[maxIdx] -= adj
	}
	return w, nil
}

// FromStandings converts win/loss records into probabilities using each
// entrant's win rate as its projection score. Records with no games count
// as a .500 team.
func FromStandings(wins, losses []int) ([]float64, error) {
	if len(wins) != len(losses) {
		return nil, fmt.Errorf("wins/losses length mismatch: %d vs %d", len(wins), len(losses))
	}
	scores := make([]float64, len(wins))
	for i := range wins {
		games := wins[i] + losses[i]
		if games == 0 {
			scores[i] = 0.5
			continue
		}
		if wins[i] < 0 || losses[i] < 0 {
			return nil, fmt.Errorf("negative record at index %d", i)
		}
		scores[i] = float64(wins[i]) / float64(games)
	}
	return FromProjections(scores)
}
