package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PortfolioSummary(c *gin.Context) {
	summary, err := h.svc.PortfolioSummary(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) Holdings(c *gin.Context) {
	holdings, err := h.svc.Holdings(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, holdings)
}

func (h *Handler) ClosedPositions(c *gin.Context) {
	closed, err := h.svc.ClosedPositions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, closed)
}

func (h *Handler) CostBasis(c *gin.Context) {
	holding, err := h.svc.CostBasis(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, holding)
}

func (h *Handler) RealizedGains(c *gin.Context) {
	closed, err := h.svc.RealizedGains(c.Request.Context(), c.Query("identifier"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, closed)
}
