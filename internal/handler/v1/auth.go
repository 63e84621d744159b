package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/session"
	"github.com/odontoflow/odontoflow/pkg/metrics"
)

type AuthHandler struct {
	provider  session.Provider
	collector *metrics.Collector
	log       *zap.Logger
}

func NewAuthHandler(provider session.Provider, collector *metrics.Collector, log *zap.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, collector: collector, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse[any]{
		Message: "account created, you can sign in now",
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.collector.SignInsTotal.WithLabelValues("failure").Inc()
		respondServiceError(c, err)
		return
	}

	h.collector.SignInsTotal.WithLabelValues("success").Inc()
	respondOK(c, s)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.provider.SignOut(c.Request.Context(), bearerToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"signed_out": true})
}
