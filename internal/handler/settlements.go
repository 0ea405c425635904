package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sportsbook/internal/service"
)

type SettlementHandler struct {
	Settlement *service.SettlementService
}

func (h *SettlementHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/markets")
	g.POST("/:id/settle", h.settle)
	g.POST("/:id/void", h.void)

	r.GET("/api/v1/settlements", h.list)
}

type settleRequest struct {
	WinningOutcomeID string `json:"winning_outcome_id" binding:"required"`
}

// @Summary Settle a market to its winning outcome
// @Tags settlements
// @Accept json
// @Param id path string true "market id"
// @Param request body settleRequest true "resolution"
// @Success 200 {object} models.Market
// @Router /api/v1/markets/{id}/settle [post]
func (h *SettlementHandler) settle(c *gin.Context) {
	if h.Settlement == nil {
		Error(c, http.StatusServiceUnavailable, "settlement service unavailable", nil)
		return
	}
	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	market, err := h.Settlement.Settle(c.Request.Context(), c.Param("id"), req.WinningOutcomeID)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, market, nil)
}

type voidRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// @Summary Void a market and refund all active stakes
// @Tags settlements
// @Accept json
// @Param id path string true "market id"
// @Param request body voidRequest true "void reason"
// @Success 200 {object} models.Market
// @Router /api/v1/markets/{id}/void [post]
func (h *SettlementHandler) void(c *gin.Context) {
	if h.Settlement == nil {
		Error(c, http.StatusServiceUnavailable, "settlement service unavailable", nil)
		return
	}
	var req voidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		Error(c, http.StatusBadRequest, "reason is required", nil)
		return
	}
	market, err := h.Settlement.Void(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, market, nil)
}

// @Summary List settlement audit records
// @Tags settlements
// @Success 200 {array} models.SettlementRecord
// @Router /api/v1/settlements [get]
func (h *SettlementHandler) list(c *gin.Context) {
	if h.Settlement == nil {
		Error(c, http.StatusServiceUnavailable, "settlement service unavailable", nil)
		return
	}
	items, err := h.Settlement.ListRecords(c.Request.Context(), intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, items, nil)
}
