// Package handler はliquidationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/app/middleware"
	"courier_backend/internal/feature/liquidations/domain/entity"
	"courier_backend/internal/feature/liquidations/transport/http/dto"
	"courier_backend/internal/feature/liquidations/usecase"
	paymentusecase "courier_backend/internal/feature/payment/usecase"
)

// LiquidationUsecase は清算操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type LiquidationUsecase interface {
	Create(ctx context.Context, packageID uint, amount float64, invoiceRef string) (*entity.Liquidation, error)
	List(ctx context.Context) ([]*entity.Liquidation, error)
	ListByClient(ctx context.Context, clientID uint) ([]*entity.Liquidation, error)
	Pay(ctx context.Context, in usecase.PayInput) (*entity.Liquidation, error)
	Cancel(ctx context.Context, id uint) error
}

// LiquidationHandler は清算操作のHTTPリクエストを処理します。
type LiquidationHandler struct {
	liquidations LiquidationUsecase
}

// NewLiquidationHandler はLiquidationHandlerの新しいインスタンスを生成します。
func NewLiquidationHandler(liquidations LiquidationUsecase) *LiquidationHandler {
	return &LiquidationHandler{liquidations: liquidations}
}

// APIList はGET /api/liquidationsを処理します。
// 各清算にパッケージと請求書参照を埋め込んだ一覧を返します。
func (h *LiquidationHandler) APIList(c *gin.Context) {
	ls, err := h.liquidations.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch liquidations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to fetch liquidations",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"liquidations": dto.NewLiquidationResponses(ls),
	})
}

// ListMine はログイン中クライアントの清算一覧を返します。
func (h *LiquidationHandler) ListMine(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
		return
	}
	ls, err := h.liquidations.ListByClient(c.Request.Context(), session.ID)
	if err != nil {
		slog.Error("failed to list client liquidations", "error", err, "client_id", session.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch liquidations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liquidations": dto.NewLiquidationResponses(ls)})
}

// AdminList は管理画面向けに全清算の一覧を返します。
func (h *LiquidationHandler) AdminList(c *gin.Context) {
	h.APIList(c)
}

// Create は管理者による清算の新規作成を処理します。
func (h *LiquidationHandler) Create(c *gin.Context) {
	var req dto.CreateLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create liquidation validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	l, err := h.liquidations.Create(c.Request.Context(), req.PackageID, req.Amount, req.InvoiceRef)
	if err != nil {
		if errors.Is(err, usecase.ErrNegativeAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "amount must not be negative"})
			return
		}
		if errors.Is(err, usecase.ErrPackageMissing) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "package does not exist"})
			return
		}
		slog.Error("failed to create liquidation", "error", err, "package_id", req.PackageID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create liquidation"})
		return
	}
	slog.Info("liquidation created", "id", l.ID, "package_id", l.PackageID, "amount", l.Amount)
	c.JSON(http.StatusCreated, gin.H{"success": true, "liquidation": dto.NewLiquidationResponse(l)})
}

// Pay は清算の支払いを処理します。カード情報を検証し、ゲートウェイに
// 課金した上でPENDING→PAIDへ遷移させます。
func (h *LiquidationHandler) Pay(c *gin.Context) {
	var req dto.PayLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("pay liquidation validation failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	l, err := h.liquidations.Pay(c.Request.Context(), usecase.PayInput{
		LiquidationID: req.LiquidationID,
		Amount:        req.Amount,
		CardNumber:    req.CardNumber,
		Expiry:        req.Expiry,
		CVC:           req.CVC,
		HolderName:    req.HolderName,
	})
	if err != nil {
		h.writePayError(c, req.LiquidationID, err)
		return
	}
	slog.Info("liquidation paid", "id", l.ID, "transaction_id", l.TransactionID)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "payment processed",
		"liquidation": dto.NewLiquidationResponse(l),
	})
}

// writePayError は支払いエラーをHTTPステータスに変換します。
// カード検証エラーはフィールド固有のメッセージをそのまま返します。
func (h *LiquidationHandler) writePayError(c *gin.Context, id uint, err error) {
	slog.Warn("payment failed", "error", err, "liquidation_id", id)
	switch {
	case errors.Is(err, usecase.ErrLiquidationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "liquidation not found"})
	case errors.Is(err, usecase.ErrLiquidationClosed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "liquidation is cancelled"})
	case errors.Is(err, usecase.ErrLiquidationConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "liquidation was modified concurrently"})
	case errors.Is(err, paymentusecase.ErrInvalidCardNumber),
		errors.Is(err, paymentusecase.ErrInvalidExpiry),
		errors.Is(err, paymentusecase.ErrInvalidCVC),
		errors.Is(err, paymentusecase.ErrMissingHolderName):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, paymentusecase.ErrGatewayDeclined):
		// ゲートウェイのメッセージをそのまま伝える
		c.JSON(http.StatusPaymentRequired, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, paymentusecase.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "payment gateway unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "payment failed"})
	}
}

// Cancel は管理者による清算の取り消しを処理します。
func (h *LiquidationHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid liquidation id"})
		return
	}
	if err := h.liquidations.Cancel(c.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, usecase.ErrLiquidationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "liquidation not found"})
		case errors.Is(err, usecase.ErrLiquidationConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "liquidation is not pending"})
		default:
			slog.Error("failed to cancel liquidation", "error", err, "id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to cancel liquidation"})
		}
		return
	}
	slog.Info("liquidation cancelled", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
