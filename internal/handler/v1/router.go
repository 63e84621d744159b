package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/config"
	"github.com/odontoflow/odontoflow/internal/session"
	"github.com/odontoflow/odontoflow/pkg/metrics"
)

type Handlers struct {
	Auth      *AuthHandler
	Records   *RecordHandler
	Dashboard *DashboardHandler
}

func NewRouter(cfg *config.Config, provider session.Provider, h Handlers, collector *metrics.Collector, log *zap.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(Metrics(collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/signin", h.Auth.SignIn)
		auth.POST("/signout", h.Auth.SignOut)
	}

	// Everything below the session gate.
	gated := api.Group("", RequireSession(provider))
	{
		gated.GET("/dashboard", h.Dashboard.View)
		gated.GET("/procedures", h.Dashboard.SearchProcedures)

		gated.GET("/records", h.Records.List)
		gated.POST("/records", h.Records.Create)
		gated.GET("/records/:id", h.Records.Get)
		gated.PUT("/records/:id", h.Records.Update)

		gated.POST("/records/:id/deletion", h.Records.StageDeletion)
		gated.DELETE("/records/:id/deletion", h.Records.CancelDeletion)
		gated.POST("/records/:id/deletion/confirm", h.Records.ConfirmDeletion)
	}

	return r
}
