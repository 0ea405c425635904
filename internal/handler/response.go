package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sportsbook/internal/engine"
	"sportsbook/internal/repository"
	"sportsbook/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// DomainError maps service and engine failures to HTTP statuses. Slippage
// rejections carry the observed and allowed figures so the client can
// re-quote instead of guessing.
func DomainError(c *gin.Context, err error) {
	var slip *engine.SlippageError
	switch {
	case errors.As(err, &slip):
		Error(c, http.StatusConflict, slip.Error(), map[string]any{
			"observed_slippage": slip.Observed,
			"max_slippage":      slip.Max,
		})
	case errors.Is(err, service.ErrMarketNotFound),
		errors.Is(err, service.ErrBetNotFound),
		errors.Is(err, service.ErrAccountNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, engine.ErrMarketNotOpen),
		errors.Is(err, engine.ErrMarketClosed),
		errors.Is(err, engine.ErrAlreadyTerminal),
		errors.Is(err, engine.ErrBetNotActive):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, engine.ErrInvalidOutcome),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrZeroValue):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, repository.ErrInsufficientFunds):
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQueryPtr(c *gin.Context, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

func paginationMeta(limit, offset int, total int64) map[string]any {
	return map[string]any{
		"limit":  limit,
		"offset": offset,
		"total":  total,
	}
}
