package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sportsbook/internal/repository"
	"sportsbook/internal/service"
	"sportsbook/internal/ws"
)

type MarketHandler struct {
	Markets *service.MarketService
	Betting *service.BettingService
	Hub     *ws.Hub
}

func (h *MarketHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/markets")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/quote", h.quote)
	g.GET("/:id/odds-history", h.oddsHistory)

	r.GET("/ws/markets/:id/odds", h.subscribeOdds)
}

type createMarketRequest struct {
	Title          string    `json:"title" binding:"required"`
	Category       string    `json:"category"`
	Outcomes       []string  `json:"outcomes" binding:"required"`
	InitialWeights []float64 `json:"initial_weights"`
	Liquidity      float64   `json:"liquidity"`
	OpensAt        time.Time `json:"opens_at"`
	ClosesAt       time.Time `json:"closes_at" binding:"required"`
}

// @Summary Create a market
// @Tags markets
// @Accept json
// @Param request body createMarketRequest true "market definition"
// @Success 200 {object} models.Market
// @Router /api/v1/markets [post]
func (h *MarketHandler) create(c *gin.Context) {
	if h.Markets == nil {
		Error(c, http.StatusServiceUnavailable, "market service unavailable", nil)
		return
	}
	var req createMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	outcomes := make([]service.OutcomeInput, len(req.Outcomes))
	for i, label := range req.Outcomes {
		outcomes[i] = service.OutcomeInput{Label: label}
	}
	market, err := h.Markets.CreateMarket(c.Request.Context(), service.CreateMarketParams{
		Title:          req.Title,
		Category:       req.Category,
		Outcomes:       outcomes,
		InitialWeights: req.InitialWeights,
		Liquidity:      req.Liquidity,
		OpensAt:        req.OpensAt,
		ClosesAt:       req.ClosesAt,
	})
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, market, nil)
}

// @Summary List markets
// @Tags markets
// @Param status query string false "filter by status"
// @Param category query string false "filter by category"
// @Success 200 {array} models.Market
// @Router /api/v1/markets [get]
func (h *MarketHandler) list(c *gin.Context) {
	if h.Markets == nil {
		Error(c, http.StatusServiceUnavailable, "market service unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListMarketsParams{
		Status:   strQueryPtr(c, "status"),
		Category: strQueryPtr(c, "category"),
		Limit:    limit,
		Offset:   offset,
		OrderBy:  "created_at",
		Asc:      boolPtr(false),
	}
	items, total, err := h.Markets.ListMarkets(c.Request.Context(), params)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a market with its current odds
// @Tags markets
// @Param id path string true "market id"
// @Success 200 {object} models.Market
// @Router /api/v1/markets/{id} [get]
func (h *MarketHandler) get(c *gin.Context) {
	if h.Markets == nil {
		Error(c, http.StatusServiceUnavailable, "market service unavailable", nil)
		return
	}
	market, err := h.Markets.GetMarket(c.Request.Context(), c.Param("id"))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, market, nil)
}

// @Summary Quote a hypothetical bet
// @Tags markets
// @Param id path string true "market id"
// @Param outcome_id query string true "outcome id"
// @Param amount query number true "stake"
// @Success 200 {object} engine.Quote
// @Router /api/v1/markets/{id}/quote [get]
func (h *MarketHandler) quote(c *gin.Context) {
	if h.Betting == nil {
		Error(c, http.StatusServiceUnavailable, "betting service unavailable", nil)
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid amount", nil)
		return
	}
	quote, err := h.Betting.Quote(c.Request.Context(), c.Param("id"), c.Query("outcome_id"), amount)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, quote, nil)
}

// @Summary Odds history for a market
// @Tags markets
// @Param id path string true "market id"
// @Param since query string false "RFC3339 lower bound"
// @Success 200 {array} models.OddsSnapshot
// @Router /api/v1/markets/{id}/odds-history [get]
func (h *MarketHandler) oddsHistory(c *gin.Context) {
	if h.Markets == nil {
		Error(c, http.StatusServiceUnavailable, "market service unavailable", nil)
		return
	}
	var since time.Time
	if v := c.Query("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid since, want RFC3339", nil)
			return
		}
		since = parsed
	}
	items, err := h.Markets.OddsHistory(c.Request.Context(), c.Param("id"), since, intQuery(c, "limit", 1000))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *MarketHandler) subscribeOdds(c *gin.Context) {
	if h.Hub == nil {
		Error(c, http.StatusServiceUnavailable, "odds stream unavailable", nil)
		return
	}
	_ = h.Hub.Subscribe(c.Writer, c.Request, c.Param("id"))
}
