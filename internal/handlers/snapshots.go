package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/service"
)

type SnapshotRequest struct {
	SnapshotDate *time.Time `json:"snapshot_date"`
	ExchangeRate string     `json:"exchange_rate"`
}

// CreateSnapshot defaults to the current instant and the stored exchange
// rate when the request leaves them out.
func (h *Handler) CreateSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid snapshot body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asOf := time.Now().UTC()
	if req.SnapshotDate != nil {
		asOf = *req.SnapshotDate
	}

	verrs := service.ValidationErrors{}
	rate := parseDecimal(req.ExchangeRate, "exchange_rate", verrs)
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	if req.ExchangeRate == "" {
		stored, err := h.svc.ExchangeRate(c.Request.Context())
		if err != nil {
			h.writeError(c, err)
			return
		}
		rate = stored
	}

	snap, err := h.svc.CreateSnapshot(c.Request.Context(), asOf, rate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *Handler) ListSnapshots(c *gin.Context) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp, want RFC3339"})
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp, want RFC3339"})
			return
		}
		to = &t
	}

	rangeResult, err := h.svc.QuerySnapshots(c.Request.Context(), from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rangeResult)
}

func (h *Handler) DeleteSnapshot(c *gin.Context) {
	ts, err := time.Parse(time.RFC3339Nano, c.Param("timestamp"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp, want RFC3339"})
		return
	}

	if err := h.svc.DeleteSnapshot(c.Request.Context(), ts); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
