package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmenoli/finance-track-webapp-sub000/internal/model"
	"github.com/rmenoli/finance-track-webapp-sub000/internal/service"
)

type TransactionRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	Identifier   string    `json:"identifier" binding:"required"`
	Broker       string    `json:"broker"`
	Type         string    `json:"type" binding:"required"`
	Units        string    `json:"units" binding:"required"`
	PricePerUnit string    `json:"price_per_unit" binding:"required"`
	Fee          string    `json:"fee"`
}

func (req TransactionRequest) toInput() (model.TransactionInput, service.ValidationErrors) {
	verrs := service.ValidationErrors{}
	in := model.TransactionInput{
		Date:         req.Date,
		Identifier:   req.Identifier,
		Broker:       req.Broker,
		Type:         model.TransactionType(req.Type),
		Units:        parseDecimal(req.Units, "units", verrs),
		PricePerUnit: parseDecimal(req.PricePerUnit, "price_per_unit", verrs),
		Fee:          parseDecimal(req.Fee, "fee", verrs),
	}
	if len(verrs) == 0 {
		return in, nil
	}
	return in, verrs
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid transaction body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, verrs := req.toInput()
	if verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	t, err := h.svc.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid transaction body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in, verrs := req.toInput()
	if verrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	t, err := h.svc.UpdateTransaction(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	t, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	f := model.TransactionFilter{
		Identifier: c.Query("identifier"),
		Broker:     c.Query("broker"),
		Type:       model.TransactionType(c.Query("type")),
		SortBy:     c.Query("sort_by"),
		SortDesc:   c.Query("order") == "desc",
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want YYYY-MM-DD"})
			return
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want YYYY-MM-DD"})
			return
		}
		f.To = &to
	}

	txs, err := h.svc.ListTransactions(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *Handler) ImportTransactions(c *gin.Context) {
	var reqs []TransactionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.log.Warnf("invalid import body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Rows with unparseable decimals become failed report rows instead of
	// rejecting the whole batch.
	inputs := make([]model.TransactionInput, len(reqs))
	parseFailures := map[int]service.ValidationErrors{}
	for i, req := range reqs {
		in, verrs := req.toInput()
		if verrs != nil {
			parseFailures[i] = verrs
			continue
		}
		inputs[i] = in
	}

	valid := make([]model.TransactionInput, 0, len(inputs))
	validIdx := make([]int, 0, len(inputs))
	for i, in := range inputs {
		if _, bad := parseFailures[i]; !bad {
			valid = append(valid, in)
			validIdx = append(validIdx, i)
		}
	}

	report, err := h.svc.ImportTransactions(c.Request.Context(), valid)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// Re-index service results against the original rows and merge in the
	// parse failures.
	merged := model.ImportReport{
		Total: len(reqs),
		Rows:  make([]model.ImportRowResult, 0, len(reqs)),
	}
	byRow := map[int]model.ImportRowResult{}
	for _, row := range report.Rows {
		row.Row = validIdx[row.Row]
		byRow[row.Row] = row
	}
	for i := range reqs {
		if verrs, bad := parseFailures[i]; bad {
			merged.Failed++
			merged.Rows = append(merged.Rows, model.ImportRowResult{Row: i, Errors: verrs})
			continue
		}
		row := byRow[i]
		if row.Success {
			merged.Succeeded++
		} else {
			merged.Failed++
		}
		merged.Rows = append(merged.Rows, row)
	}

	c.JSON(http.StatusOK, merged)
}
