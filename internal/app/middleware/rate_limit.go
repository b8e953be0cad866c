package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier_backend/internal/shared/ratelimiter"
)

// RateLimit はクライアントIPごとにリクエスト数を制限するミドルウェアです。
// 上限を超えた場合は429を返して以降の処理を打ち切ります。
func RateLimit(l *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many attempts",
			})
			return
		}
		c.Next()
	}
}
