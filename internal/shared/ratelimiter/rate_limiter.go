// Package ratelimiter はログイン試行のような認証エンドポイントを
// 固定ウィンドウ方式で制限するためのレートリミッターを提供します。
package ratelimiter

import (
	"log/slog"
	"sync"
	"time"
)

// Limiter はキー（クライアントIPなど）ごとに固定ウィンドウで
// リクエスト数を制限します。並行アクセスに対して安全です。
type Limiter struct {
	mu        sync.Mutex
	limit     int           // 1ウィンドウあたりの最大許可数
	interval  time.Duration // ウィンドウの長さ
	counts    map[string]int
	lastReset time.Time

	// テストで時刻を固定できるようにする
	now func() time.Time
}

// NewLimiter は指定された上限とウィンドウ長でLimiterを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:     limit,
		interval:  interval,
		counts:    make(map[string]int),
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Allow はキーに対するリクエストを許可するかどうかを返します。
// ウィンドウが経過していれば全キーのカウントをリセットします。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastReset) >= l.interval {
		// ウィンドウ経過。カウントをリセット
		l.counts = make(map[string]int)
		l.lastReset = now
	}

	if l.counts[key] >= l.limit {
		slog.Warn("rate limit exceeded", "key", key, "limit", l.limit)
		return false
	}

	l.counts[key]++
	return true
}
