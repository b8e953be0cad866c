// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// データベースへの疎通も確認し、落ちている場合はdegradedとして503を返します。
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		if err := h.pingDB(c); err != nil {
			c.JSON(503, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(200, gin.H{"status": "ok", "database": "up"})
	}
}

func (h *HealthHandler) pingDB(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
