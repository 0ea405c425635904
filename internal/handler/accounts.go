package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"sportsbook/internal/service"
)

type AccountHandler struct {
	Accounts *service.AccountService
}

func (h *AccountHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/accounts")
	g.POST("", h.create)
	g.GET("/:user_id", h.get)
	g.POST("/:user_id/deposits", h.deposit)
	g.GET("/:user_id/ledger", h.ledger)
}

type createAccountRequest struct {
	UserID         string          `json:"user_id" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// @Summary Open an account
// @Tags accounts
// @Accept json
// @Param request body createAccountRequest true "account"
// @Success 200 {object} models.Account
// @Router /api/v1/accounts [post]
func (h *AccountHandler) create(c *gin.Context) {
	if h.Accounts == nil {
		Error(c, http.StatusServiceUnavailable, "account service unavailable", nil)
		return
	}
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	account, err := h.Accounts.CreateAccount(c.Request.Context(), req.UserID, req.InitialDeposit)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, account, nil)
}

// @Summary Get an account
// @Tags accounts
// @Param user_id path string true "user id"
// @Success 200 {object} models.Account
// @Router /api/v1/accounts/{user_id} [get]
func (h *AccountHandler) get(c *gin.Context) {
	if h.Accounts == nil {
		Error(c, http.StatusServiceUnavailable, "account service unavailable", nil)
		return
	}
	account, err := h.Accounts.GetAccount(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, account, nil)
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// @Summary Deposit funds
// @Tags accounts
// @Accept json
// @Param user_id path string true "user id"
// @Param request body depositRequest true "deposit"
// @Success 200 {object} models.Account
// @Router /api/v1/accounts/{user_id}/deposits [post]
func (h *AccountHandler) deposit(c *gin.Context) {
	if h.Accounts == nil {
		Error(c, http.StatusServiceUnavailable, "account service unavailable", nil)
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	userID := c.Param("user_id")
	if err := h.Accounts.Deposit(c.Request.Context(), userID, req.Amount); err != nil {
		DomainError(c, err)
		return
	}
	account, err := h.Accounts.GetAccount(c.Request.Context(), userID)
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, account, nil)
}

// @Summary Account ledger
// @Tags accounts
// @Param user_id path string true "user id"
// @Success 200 {array} models.LedgerEntry
// @Router /api/v1/accounts/{user_id}/ledger [get]
func (h *AccountHandler) ledger(c *gin.Context) {
	if h.Accounts == nil {
		Error(c, http.StatusServiceUnavailable, "account service unavailable", nil)
		return
	}
	entries, err := h.Accounts.Ledger(c.Request.Context(), c.Param("user_id"), intQuery(c, "limit", 100))
	if err != nil {
		DomainError(c, err)
		return
	}
	Ok(c, entries, nil)
}
