// Package handlers exposes the engine over HTTP. Decimal fields travel as
// strings in both directions to avoid floating-point precision loss.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions", h.ListTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
	r.PUT("/transactions/:id", h.UpdateTransaction)
	r.DELETE("/transactions/:id", h.DeleteTransaction)
	r.POST("/transactions/import", h.ImportTransactions)

	r.GET("/portfolio/summary", h.PortfolioSummary)
	r.GET("/portfolio/holdings", h.Holdings)
	r.GET("/portfolio/closed-positions", h.ClosedPositions)
	r.GET("/portfolio/cost-basis/:identifier", h.CostBasis)
	r.GET("/portfolio/realized-gains", h.RealizedGains)

	r.PUT("/position-values/:identifier", h.UpsertPositionValue)
	r.GET("/position-values", h.ListPositionValues)
	r.GET("/position-values/:identifier", h.GetPositionValue)
	r.DELETE("/position-values/:identifier", h.DeletePositionValue)

	r.POST("/other-assets", h.UpsertOtherAsset)
	r.GET("/other-assets", h.ListOtherAssets)
	r.GET("/other-assets/:type", h.GetOtherAsset)
	r.DELETE("/other-assets/:type", h.DeleteOtherAsset)

	r.GET("/exchange-rate", h.GetExchangeRate)
	r.PUT("/exchange-rate", h.SetExchangeRate)

	r.POST("/snapshots", h.CreateSnapshot)
	r.GET("/snapshots", h.ListSnapshots)
	r.DELETE("/snapshots/:timestamp", h.DeleteSnapshot)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrReadOnlyAssetType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset type is read-only"})
	default:
		h.log.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

// parseDecimal collects a field-level error instead of failing the whole
// request on the first bad number.
func parseDecimal(raw, field string, verrs service.ValidationErrors) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verrs[field] = "invalid decimal format"
		return decimal.Zero
	}
	return d
}
