package service

import "sync"

// MarketLocks serializes writers per market. The pricing engine is pure and
// returns new snapshots, so two concurrent mutations of the same market
// (placements, or a placement racing a settlement) would each read the same
// stored state and one write would be lost; holding the market's lock across
// load-compute-persist prevents that. One instance must be shared by every
// service that writes markets: a placement and a settlement serialize only
// if they contend on the same lock.
// Locks are never released from the map; the market population is small and
// bounded by what the book carries.
type MarketLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMarketLocks() *MarketLocks {
	return &MarketLocks{locks: map[string]*sync.Mutex{}}
}

func (k *MarketLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
