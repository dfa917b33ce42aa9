package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"minhas-financas/internal/domain"
)

type entryRequest struct {
	UserID      int64            `json:"user_id"`
	Description string           `json:"description"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        domain.EntryType `json:"type"`
}

func (r entryRequest) toDomain() *domain.Entry {
	return &domain.Entry{
		UserID:      r.UserID,
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		Amount:      r.Amount,
		Type:        r.Type,
	}
}

type entryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CANCELED SETTLED"`
}

type entryQuery struct {
	UserID      int64  `form:"user_id" binding:"required,gt=0"`
	Description string `form:"description"`
	Month       int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year        int    `form:"year"`
	Type        string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

type EntryResponse struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	Description string             `json:"description"`
	Month       int                `json:"month"`
	Year        int                `json:"year"`
	Amount      json.Number        `json:"amount"`
	Type        domain.EntryType   `json:"type"`
	Status      domain.EntryStatus `json:"status"`
	CreatedAt   string             `json:"created_at"`
}

func entryToResponse(entry domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Description: entry.Description,
		Month:       entry.Month,
		Year:        entry.Year,
		Amount:      json.Number(entry.Amount.String()),
		Type:        entry.Type,
		Status:      entry.Status,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) createEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	entry, err := h.ledger.CreateEntry(c.Request.Context(), req.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryToResponse(*entry))
}

func (h *Handler) listEntries(c *gin.Context) {
	var q entryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	entries, err := h.ledger.ListEntries(c.Request.Context(), domain.EntryFilter{
		UserID:      q.UserID,
		Description: q.Description,
		Month:       q.Month,
		Year:        q.Year,
		Type:        domain.EntryType(q.Type),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]EntryResponse, len(entries))
	for i := range entries {
		resp[i] = entryToResponse(entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}

	entry, found, err := h.ledger.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*entry))
}

func (h *Handler) updateEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	entry := req.toDomain()
	entry.ID = id
	updated, err := h.ledger.UpdateEntry(c.Request.Context(), entry)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*updated))
}

func (h *Handler) updateEntryStatus(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}

	var req entryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	entry, err := h.ledger.UpdateStatus(c.Request.Context(), id, domain.EntryStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, entryToResponse(*entry))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	id, ok := parseID(c, "entry")
	if !ok {
		return
	}

	if err := h.ledger.DeleteEntry(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
