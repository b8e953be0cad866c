// Package router wires the HTTP routes of the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"courier_backend/internal/app/middleware"
	authhandler "courier_backend/internal/feature/auth/transport/handler"
	liqhandler "courier_backend/internal/feature/liquidations/transport/handler"
	pkghandler "courier_backend/internal/feature/packages/transport/handler"
	cfghandler "courier_backend/internal/feature/sysconfig/transport/handler"
	"courier_backend/internal/platform/http/handler"
	"courier_backend/internal/platform/sessioncookie"
	"courier_backend/internal/shared/ratelimiter"
)

// NewRouter builds the gin engine with the session guard applied to
// every page route. API routes under /api bypass the guard and answer
// with JSON status codes instead of redirects.
func NewRouter(
	codec *sessioncookie.Codec,
	healthH *handler.HealthHandler,
	authH *authhandler.AuthHandler,
	pkgH *pkghandler.PackageHandler,
	liqH *liqhandler.LiquidationHandler,
	cfgH *cfghandler.SysconfigHandler,
) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())

	// セッションガードを全ルートに適用（/api と静的アセットは除外）
	r.Use(middleware.Guard(codec))

	// 認証エンドポイントはIPごとに1分あたり10回まで
	authLimit := middleware.RateLimit(ratelimiter.NewLimiter(10, time.Minute))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", healthH.Health)
	// 新規ユーザー登録
	r.POST("/register", authLimit, authH.Register)
	// ログイン（セッションクッキー発行）
	r.POST("/login", authLimit, authH.Login)
	// 管理者ログイン
	r.POST("/admin/login", authLimit, authH.AdminLogin)
	// ログアウト（クッキー削除は無条件）
	r.POST("/logout", authH.Logout)

	// ガード対象の公開API（リダイレクトではなくJSONで応答）
	api := r.Group("/api")
	{
		api.GET("/liquidations", liqH.APIList)
	}

	// クライアント用ダッシュボード
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", authH.Home)
		dashboard.GET("/perfil", authH.Profile)
		dashboard.GET("/paquetes", pkgH.ListMine)
		dashboard.GET("/paquetes/:tracking", pkgH.FindByTracking)
		dashboard.GET("/liquidacion", liqH.ListMine)
		dashboard.POST("/liquidacion/pay", liqH.Pay)
	}

	// 管理者エリア（ガードがADMINロールを強制）
	admin := r.Group("/admin")
	{
		admin.GET("", authH.Home)
		admin.GET("/usuarios", authH.ListUsers)
		admin.POST("/usuarios", authH.CreateUser)
		admin.GET("/paquetes", pkgH.List)
		admin.POST("/paquetes", pkgH.Create)
		admin.PATCH("/paquetes/:id/status", pkgH.UpdateStatus)
		admin.GET("/liquidaciones", liqH.AdminList)
		admin.POST("/liquidaciones", liqH.Create)
		admin.POST("/liquidaciones/:id/cancel", liqH.Cancel)
		admin.GET("/configuracion", cfgH.Get)
		admin.PUT("/configuracion", cfgH.Save)
		admin.POST("/configuracion/smtp-test", cfgH.TestSMTP)
	}

	return r
}
