// Package handler provides the HTTP handlers for the packages feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/app/middleware"
	"courier_backend/internal/feature/packages/domain/entity"
	"courier_backend/internal/feature/packages/transport/http/dto"
	"courier_backend/internal/feature/packages/usecase"
)

// PackageUsecase defines the package operations consumed by this handler.
type PackageUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Package, error)
	List(ctx context.Context) ([]*entity.Package, error)
	ListByClient(ctx context.Context, clientID uint) ([]*entity.Package, error)
	FindByTracking(ctx context.Context, tracking string) (*entity.Package, error)
	UpdateStatus(ctx context.Context, id uint, status entity.Status) error
}

// PackageHandler handles HTTP requests for package tracking and management.
type PackageHandler struct {
	packages PackageUsecase
}

// NewPackageHandler creates a new instance of PackageHandler.
func NewPackageHandler(packages PackageUsecase) *PackageHandler {
	return &PackageHandler{packages: packages}
}

// Create registers a new package (admin).
func (h *PackageHandler) Create(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create package validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	p, err := h.packages.Create(c.Request.Context(), usecase.CreateInput{
		Tracking:    req.Tracking,
		ClientID:    req.ClientID,
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTrackingAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "tracking number already exists"})
			return
		}
		slog.Error("failed to create package", "error", err, "tracking", req.Tracking)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create package"})
		return
	}
	slog.Info("package registered", "tracking", p.Tracking, "client_id", p.ClientID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "package": dto.NewPackageResponse(p)})
}

// List returns every package, newest first (admin).
func (h *PackageHandler) List(c *gin.Context) {
	pkgs, err := h.packages.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list packages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "packages": toResponses(pkgs)})
}

// ListMine returns the logged-in client's packages (dashboard).
func (h *PackageHandler) ListMine(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
		return
	}
	pkgs, err := h.packages.ListByClient(c.Request.Context(), session.ID)
	if err != nil {
		slog.Error("failed to list client packages", "error", err, "client_id", session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list packages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "packages": toResponses(pkgs)})
}

// FindByTracking looks up one package by its carrier reference.
func (h *PackageHandler) FindByTracking(c *gin.Context) {
	tracking := c.Param("tracking")
	p, err := h.packages.FindByTracking(c.Request.Context(), tracking)
	if err != nil {
		if errors.Is(err, usecase.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "package not found"})
			return
		}
		slog.Error("tracking lookup failed", "error", err, "tracking", tracking)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "package": dto.NewPackageResponse(p)})
}

// UpdateStatus moves a package to a new status (admin).
func (h *PackageHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid package id"})
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if err := h.packages.UpdateStatus(c.Request.Context(), uint(id), entity.Status(req.Status)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid package status"})
		case errors.Is(err, usecase.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "package not found"})
		default:
			slog.Error("failed to update package status", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update status"})
		}
		return
	}
	slog.Info("package status updated", "id", id, "status", req.Status)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func toResponses(pkgs []*entity.Package) []dto.PackageResponse {
	out := make([]dto.PackageResponse, len(pkgs))
	for i, p := range pkgs {
		out[i] = dto.NewPackageResponse(p)
	}
	return out
}
