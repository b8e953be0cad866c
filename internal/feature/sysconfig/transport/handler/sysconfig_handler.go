// Package handler provides the HTTP handlers for the sysconfig feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/feature/sysconfig/domain/entity"
	"courier_backend/internal/feature/sysconfig/usecase"
)

// SysconfigUsecase defines the configuration operations consumed by this handler.
type SysconfigUsecase interface {
	Get(ctx context.Context) (*entity.SystemConfig, error)
	Save(ctx context.Context, cfg *entity.SystemConfig) error
	TestSMTP(ctx context.Context, smtp entity.SMTPConfig) error
}

// SysconfigHandler handles the admin configuration endpoints.
type SysconfigHandler struct {
	configs SysconfigUsecase
}

// NewSysconfigHandler creates a new instance of SysconfigHandler.
func NewSysconfigHandler(configs SysconfigUsecase) *SysconfigHandler {
	return &SysconfigHandler{configs: configs}
}

// Get returns the current system configuration.
func (h *SysconfigHandler) Get(c *gin.Context) {
	cfg, err := h.configs.Get(c.Request.Context())
	if err != nil {
		slog.Error("failed to load system config", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "config": cfg})
}

// Save validates and stores the configuration.
func (h *SysconfigHandler) Save(c *gin.Context) {
	var cfg entity.SystemConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		slog.Warn("config validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if err := h.configs.Save(c.Request.Context(), &cfg); err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingCompanyFields), errors.Is(err, usecase.ErrMissingSMTPFields):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			slog.Error("failed to save system config", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save configuration"})
		}
		return
	}
	slog.Info("system config saved", "company", cfg.CompanyName)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TestSMTP performs a live handshake against the submitted SMTP settings.
func (h *SysconfigHandler) TestSMTP(c *gin.Context) {
	var smtp entity.SMTPConfig
	if err := c.ShouldBindJSON(&smtp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if err := h.configs.TestSMTP(c.Request.Context(), smtp); err != nil {
		if errors.Is(err, usecase.ErrMissingSMTPFields) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		slog.Warn("smtp test failed", "error", err, "host", smtp.Host)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
