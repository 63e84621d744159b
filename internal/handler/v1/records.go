package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/editor"
	"github.com/odontoflow/odontoflow/internal/service"
	"github.com/odontoflow/odontoflow/pkg/metrics"
)

type RecordHandler struct {
	svc       *service.RecordService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewRecordHandler(svc *service.RecordService, collector *metrics.Collector, log *zap.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, collector: collector, log: log}
}

// List returns the raw collection, newest-first.
func (h *RecordHandler) List(c *gin.Context) {
	respondOK(c, h.svc.Records())
}

func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}

func (h *RecordHandler) Create(c *gin.Context) {
	var form editor.Form
	if !bindJSON(c, &form) {
		return
	}

	r, err := h.svc.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.RecordsCreatedTotal.Inc()
	respondCreated(c, r)
}

func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var form editor.Form
	if !bindJSON(c, &form) {
		return
	}

	r, err := h.svc.Update(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.RecordsUpdatedTotal.Inc()
	respondOK(c, r)
}

// StageDeletion moves the deletion guard to pending for the record. The
// response echoes the exact name the caller must re-type to confirm.
func (h *RecordHandler) StageDeletion(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.StageDeletion(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"staged":       r,
		"confirm_with": r.Name,
	})
}

func (h *RecordHandler) CancelDeletion(c *gin.Context) {
	h.svc.CancelDeletion()
	respondOK(c, gin.H{"cancelled": true})
}

type confirmDeletionRequest struct {
	Name string `json:"name"`
}

func (h *RecordHandler) ConfirmDeletion(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req confirmDeletionRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.ConfirmDeletion(c.Request.Context(), id, req.Name); err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.RecordsDeletedTotal.Inc()
	respondOK(c, gin.H{"deleted": true})
}
