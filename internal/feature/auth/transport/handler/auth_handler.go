// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/app/middleware"
	"courier_backend/internal/feature/auth/domain/entity"
	"courier_backend/internal/feature/auth/transport/http/dto"
	"courier_backend/internal/feature/auth/usecase"
	"courier_backend/internal/platform/sessioncookie"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定された入力で新規ユーザー（CLIENT）を登録します。
	Register(ctx context.Context, in usecase.RegisterInput) error
	// Login はユーザーを認証し、成功時にセッションクレームを返します。
	Login(ctx context.Context, email, password string) (*entity.Session, error)
	// AdminLogin はADMINロールのユーザーのみを認証します。
	AdminLogin(ctx context.Context, email, password string) (*entity.Session, error)
	// GetUser はIDでユーザーを取得します。
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	// ListUsers は全ユーザーを返します。
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// CreateUser は管理者によるユーザー作成を処理します。
	CreateUser(ctx context.Context, in usecase.RegisterInput, role entity.Role) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、セッションクッキーの発行と削除を担当します。
type AuthHandler struct {
	auth    AuthUsecase
	cookies *sessioncookie.Codec
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, cookies *sessioncookie.Codec) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterRequestにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
		Document: req.Document,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: "ok"})
}

// writeRegisterError は登録エラーをHTTPステータスに変換します。
func (h *AuthHandler) writeRegisterError(c *gin.Context, err error) {
	slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "email already registered"})
	case errors.Is(err, usecase.ErrMissingFields):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "all fields are required"})
	case errors.Is(err, usecase.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid role"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "registration failed"})
	}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 成功時は署名付きセッションクッキーを発行し、ロールに応じた
// リダイレクト先（ADMIN→/admin、それ以外→/dashboard）を返します。
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.auth.Login)
}

// AdminLogin は管理者ログインAPIエンドポイントを処理します。
// ADMIN以外のユーザーは通常ログインと同じ汎用エラーで拒否されます。
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.auth.AdminLogin)
}

func (h *AuthHandler) login(c *gin.Context, authenticate func(ctx context.Context, email, password string) (*entity.Session, error)) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	session, err := authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid email or password"})
		return
	}
	if err := h.cookies.Issue(c, session); err != nil {
		slog.Error("failed to issue session cookie", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "role", session.Role, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Redirect: session.HomePath()})
}

// Logout はセッションクッキーを無条件に削除します。常に成功を返します。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

// Home はログイン中のセッションクレームを返します。
// /dashboard と /admin の両方のランディングで使用されます。
func (h *AuthHandler) Home(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": gin.H{
			"id":       session.ID,
			"email":    session.Email,
			"name":     session.Name,
			"lastName": session.LastName,
			"role":     session.Role,
			"expires":  session.ExpiresAt,
		},
	})
}

// Profile はログイン中ユーザーのプロフィールを返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), session.ID)
	if err != nil {
		slog.Warn("profile lookup failed", "error", err, "user_id", session.ID)
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.NewUserResponse(user)})
}

// ListUsers は管理画面向けに全ユーザーの一覧を返します。
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list users"})
		return
	}
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.NewUserResponse(u)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out})
}

// CreateUser は管理者によるユーザー作成エンドポイントを処理します。
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}
	err := h.auth.CreateUser(c.Request.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
		Document: req.Document,
		Phone:    req.Phone,
		Address:  req.Address,
	}, entity.Role(req.Role))
	if err != nil {
		h.writeRegisterError(c, err)
		return
	}
	slog.Info("user created by admin", "email", req.Email, "role", req.Role)
	c.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: "ok"})
}
