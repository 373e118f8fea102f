package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/service"
)

type PositionValueRequest struct {
	CurrentValue string `json:"current_value" binding:"required"`
}

func (h *Handler) UpsertPositionValue(c *gin.Context) {
	var req PositionValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid position value body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verrs := service.ValidationErrors{}
	value := parseDecimal(req.CurrentValue, "current_value", verrs)
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	v, err := h.svc.UpsertPositionValue(c.Request.Context(), c.Param("identifier"), value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) ListPositionValues(c *gin.Context) {
	values, err := h.svc.PositionValues(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *Handler) GetPositionValue(c *gin.Context) {
	v, err := h.svc.PositionValue(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) DeletePositionValue(c *gin.Context) {
	if err := h.svc.DeletePositionValue(c.Request.Context(), c.Param("identifier")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type OtherAssetRequest struct {
	AssetType   string `json:"asset_type" binding:"required"`
	AssetDetail string `json:"asset_detail"`
	Currency    string `json:"currency" binding:"required"`
	Value       string `json:"value" binding:"required"`
}

func (h *Handler) UpsertOtherAsset(c *gin.Context) {
	var req OtherAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid other asset body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verrs := service.ValidationErrors{}
	value := parseDecimal(req.Value, "value", verrs)
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	a, err := h.svc.UpsertOtherAsset(c.Request.Context(), model.OtherAsset{
		Type:     model.AssetType(req.AssetType),
		Detail:   req.AssetDetail,
		Currency: model.Currency(req.Currency),
		Value:    value,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) ListOtherAssets(c *gin.Context) {
	includeInvestments := c.Query("include_investments") == "true"
	assets, err := h.svc.OtherAssets(c.Request.Context(), includeInvestments)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *Handler) GetOtherAsset(c *gin.Context) {
	a, err := h.svc.OtherAsset(c.Request.Context(), model.AssetType(c.Param("type")), c.Query("detail"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteOtherAsset(c *gin.Context) {
	if err := h.svc.DeleteOtherAsset(c.Request.Context(), model.AssetType(c.Param("type")), c.Query("detail")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type ExchangeRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

func (h *Handler) GetExchangeRate(c *gin.Context) {
	rate, err := h.svc.ExchangeRate(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

func (h *Handler) SetExchangeRate(c *gin.Context) {
	var req ExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid exchange rate body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verrs := service.ValidationErrors{}
	rate := parseDecimal(req.Rate, "rate", verrs)
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	if err := h.svc.SetExchangeRate(c.Request.Context(), rate); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
