package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"courier_backend/internal/app/router"
	authadapters "courier_backend/internal/feature/auth/adapters"
	authhandler "courier_backend/internal/feature/auth/transport/handler"
	authusecase "courier_backend/internal/feature/auth/usecase"
	liqadapters "courier_backend/internal/feature/liquidations/adapters"
	liqhandler "courier_backend/internal/feature/liquidations/transport/handler"
	liqusecase "courier_backend/internal/feature/liquidations/usecase"
	pkgadapters "courier_backend/internal/feature/packages/adapters"
	pkghandler "courier_backend/internal/feature/packages/transport/handler"
	pkgusecase "courier_backend/internal/feature/packages/usecase"
	"courier_backend/internal/feature/payment/adapters/payphone"
	paymentusecase "courier_backend/internal/feature/payment/usecase"
	cfgadapters "courier_backend/internal/feature/sysconfig/adapters"
	cfghandler "courier_backend/internal/feature/sysconfig/transport/handler"
	cfgusecase "courier_backend/internal/feature/sysconfig/usecase"
	"courier_backend/internal/platform/cache"
	platformdb "courier_backend/internal/platform/db"
	platformhttp "courier_backend/internal/platform/http"
	platformhandler "courier_backend/internal/platform/http/handler"
	platformredis "courier_backend/internal/platform/redis"
	"courier_backend/internal/platform/sessioncookie"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := platformdb.OpenDB()

	// Redis（利用不可の場合はキャッシュなしで稼働）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// セッションクッキー署名鍵（開発中の注意喚起）
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Println("[WARN] SESSION_SECRET is not set. Set a strong secret in production.")
	}
	codec := sessioncookie.NewCodec(secret, os.Getenv("APP_ENV") == "production")

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	pkgRepo := pkgadapters.NewPackageGorm(db)
	liqRepo := liqadapters.NewLiquidationGorm(db)
	attemptRepo := liqadapters.NewChargeAttemptGorm(db)
	cfgRepo := cfgadapters.NewConfigGorm(db)

	// Redisキャッシュで清算一覧をラップ
	cachedLiqRepo := cache.NewCachingLiquidationRepository(rdb, 0, liqRepo, "liquidations")

	// 決済ゲートウェイ
	paymentCfg := payphone.LoadConfig()
	gateway := payphone.NewClient(paymentCfg, platformhttp.NewHTTPClient(paymentCfg.Timeout))

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo)
	pkgUC := pkgusecase.NewPackageUsecase(pkgRepo)
	paymentUC := paymentusecase.NewPaymentUsecase(gateway)
	liqUC := liqusecase.NewLiquidationUsecase(cachedLiqRepo, attemptRepo, paymentUC)
	cfgUC := cfgusecase.NewSysconfigUsecase(cfgRepo, cfgadapters.NewSMTPChecker())

	// Handler
	healthH := platformhandler.NewHealthHandler(db)
	authH := authhandler.NewAuthHandler(authUC, codec)
	pkgH := pkghandler.NewPackageHandler(pkgUC)
	liqH := liqhandler.NewLiquidationHandler(liqUC)
	cfgH := cfghandler.NewSysconfigHandler(cfgUC)

	// ルータ生成
	r := router.NewRouter(codec, healthH, authH, pkgH, liqH, cfgH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
