package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/dashboard"
	"github.com/odontoflow/odontoflow/internal/domain/record"
	"github.com/odontoflow/odontoflow/internal/service"
	"github.com/odontoflow/odontoflow/pkg/metrics"
)

type DashboardHandler struct {
	svc       *service.RecordService
	collector *metrics.Collector
	log       *zap.Logger
}

func NewDashboardHandler(svc *service.RecordService, collector *metrics.Collector, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, collector: collector, log: log}
}

// View computes the filtered dashboard: visible records plus aggregates.
// Filter parameters: q, classification, procedure (repeatable, or a single
// comma-separated "procedures"), start_date, end_date (YYYY-MM-DD).
func (h *DashboardHandler) View(c *gin.Context) {
	f, ok := h.parseFilter(c)
	if !ok {
		return
	}

	_, span := otel.Tracer("odontoflow/dashboard").Start(c.Request.Context(), "dashboard.BuildView")
	view := h.svc.View(f)
	span.SetAttributes(
		attribute.Int("dashboard.visible_count", view.Summary.VisibleCount),
		attribute.Bool("dashboard.filtered", !f.IsZero()),
	)
	span.End()

	h.collector.DashboardQueries.Inc()
	respondOK(c, view)
}

// SearchProcedures serves the vocabulary search used by the procedure
// multi-select and the form.
func (h *DashboardHandler) SearchProcedures(c *gin.Context) {
	respondOK(c, record.SearchProcedures(c.Query("q")))
}

func (h *DashboardHandler) parseFilter(c *gin.Context) (dashboard.Filter, bool) {
	var f dashboard.Filter

	f.TextQuery = c.Query("q")

	if raw := c.Query("classification"); raw != "" {
		cls := record.Classification(raw)
		if !cls.IsValid() {
			respondServiceError(c, record.ErrInvalidClassification)
			return f, false
		}
		f.Classification = cls
	}

	f.Procedures = c.QueryArray("procedure")
	if raw := c.Query("procedures"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if t := strings.TrimSpace(p); t != "" {
				f.Procedures = append(f.Procedures, t)
			}
		}
	}

	start, ok := parseQueryDate(c, "start_date")
	if !ok {
		return f, false
	}
	end, ok := parseQueryDate(c, "end_date")
	if !ok {
		return f, false
	}
	f.StartDate, f.EndDate = start, end

	return f, true
}
