package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHealthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	r := gin.New()
	r.Any("/healthz", NewHealthHandler(db).Health)
	return r, db
}

func TestHealthHandler_OK(t *testing.T) {
	r, _ := setupHealthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	r, db := setupHealthRouter(t)

	// 接続を閉じてデータベース障害を再現する
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestHealthHandler_HeadAndOptions(t *testing.T) {
	r, _ := setupHealthRouter(t)

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodHead, http.StatusOK},
		{http.MethodOptions, http.StatusNoContent},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, "/healthz", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code)
	}
}
