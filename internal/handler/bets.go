package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sportsbook/internal/repository"
	"sportsbook/internal/service"
)

type BetHandler struct {
	Betting *service.BettingService
}

func (h *BetHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/bets")
	g.POST("", h.place)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/cash-out", h.cashOutValue)
	g.POST("/:id/cash-out", h.cashOut)
}

type placeBetRequest struct {
	MarketID    string          `json:"market_id" binding:"required"`
	UserID      string          `json:"user_id" binding:"required"`
	OutcomeID   string          `json:"outcome_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	MaxSlippage float64         `json:"max_slippage"`
}

// @Summary Place a bet
// @Tags bets
// @Accept json
// @Param request body placeBetRequest true "bet"
// @Success 200 {object} models.Bet
// @Router /api/v1/bets [post]
func (h *BetHandler) place(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	bet, market, err := h.Betting.PlaceBet(c.Request.Context(), service.PlaceBetRequest{
		MarketID:    req.MarketID,
		UserID:      req.UserID,
		OutcomeID:   req.OutcomeID,
		Amount:      req.Amount,
		MaxSlippage: req.MaxSlippage,
	})
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, gin.H{"bet": bet, "market": market}, nil)
}

// @Summary List bets
// @Tags bets
// @Param market_id query string false "filter by market"
// @Param user_id query string false "filter by user"
// @Success 200 {array} models.Bet
// @Router /api/v1/bets [get]
func (h *BetHandler) list(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	params := repository.ListBetsParams{
		MarketID: strQueryPtr(c, "market_id"),
		UserID:   strQueryPtr(c, "user_id"),
		Status:   strQueryPtr(c, "status"),
		Limit:    intQuery(c, "limit", 50),
		Offset:   intQuery(c, "offset", 0),
	}
	items, err := h.Betting.ListBets(c.Request.Context(), params)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Get one bet
// @Tags bets
// @Param id path string true "bet id"
// @Success 200 {object} models.Bet
// @Router /api/v1/bets/{id} [get]
func (h *BetHandler) get(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	bet, err := h.Betting.GetBet(c.Request.Context(), c.Param("id"))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, bet, nil)
}

// @Summary Current cash-out value for a bet
// @Tags bets
// @Param id path string true "bet id"
// @Success 200 {object} map[string]string
// @Router /api/v1/bets/{id}/cash-out [get]
func (h *BetHandler) cashOutValue(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	value, err := h.Betting.CashOutValue(c.Request.Context(), c.Param("id"))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, gin.H{"value": value}, nil)
}

// @Summary Cash a bet out at its current value
// @Tags bets
// @Param id path string true "bet id"
// @Success 200 {object} models.Bet
// @Router /api/v1/bets/{id}/cash-out [post]
func (h *BetHandler) cashOut(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	bet, err := h.Betting.CashOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, bet, nil)
}
