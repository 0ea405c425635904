// Package ws pushes live odds to websocket subscribers. Each connection
// subscribes to one market; every trade and settlement publishes the
// market's full price vector to its subscribers.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"sportsbook/internal/models"
	"sportsbook/internal/odds"
)

const (
	subscriberBuffer = 16
	writeTimeout     = 5 * time.Second
)

type OutcomePrice struct {
	OutcomeID          string  `json:"outcome_id"`
	Label              string  `json:"label"`
	ImpliedProbability float64 `json:"implied_probability"`
	DecimalOdds        float64 `json:"decimal_odds"`
	AmericanOdds       int     `json:"american_odds"`
}

type OddsUpdate struct {
	MarketID string         `json:"market_id"`
	Status   string         `json:"status"`
	Outcomes []OutcomePrice `json:"outcomes"`
	At       time.Time      `json:"at"`
}

type subscriber struct {
	ch chan []byte
}

type Hub struct {
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   map[string]map[*subscriber]struct{}{},
	}
}

// PublishMarket fans the market's current prices out to every subscriber.
// A subscriber that cannot keep up has the update dropped rather than
// blocking the trading path.
func (h *Hub) PublishMarket(m *models.Market) {
	if h == nil || m == nil {
		return
	}
	update := OddsUpdate{
		MarketID: m.ID,
		Status:   m.Status,
		Outcomes: make([]OutcomePrice, len(m.Outcomes)),
		At:       time.Now().UTC(),
	}
	for i, o := range m.Outcomes {
		update.Outcomes[i] = OutcomePrice{
			OutcomeID:          o.ID,
			Label:              o.Label,
			ImpliedProbability: o.ImpliedProbability,
			DecimalOdds:        o.DecimalOdds,
			AmericanOdds:       odds.PriceToAmerican(odds.Clamp(o.ImpliedProbability)),
		}
	}
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[m.ID] {
		select {
		case sub.ch <- payload:
		default:
			if h.logger != nil {
				h.logger.Debug("odds update dropped for slow subscriber", zap.String("market_id", m.ID))
			}
		}
	}
}

// Subscribe upgrades the request and streams odds updates for one market
// until the client disconnects or the context ends.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, marketID string) error {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	sub := &subscriber{ch: make(chan []byte, subscriberBuffer)}
	h.add(marketID, sub)
	defer h.remove(marketID, sub)

	ctx := r.Context()
	// Reads are discarded; a read error is the disconnect signal.
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutdown")
			return ctx.Err()
		case err := <-readErr:
			conn.Close(websocket.StatusNormalClosure, "client closed")
			return err
		case payload := <-sub.ch:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				if h.logger != nil {
					h.logger.Warn("odds ws write failed", zap.String("market_id", marketID), zap.Error(err))
				}
				return err
			}
		}
	}
}

// SubscriberCount reports live subscriptions for one market.
func (h *Hub) SubscriberCount(marketID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[marketID])
}

func (h *Hub) add(marketID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[marketID]
	if !ok {
		set = map[*subscriber]struct{}{}
		h.subs[marketID] = set
	}
	set[sub] = struct{}{}
}

func (h *Hub) remove(marketID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[marketID]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, marketID)
	}
}
