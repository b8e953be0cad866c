// Package db opens the application database and runs migrations.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "courier_backend/internal/feature/auth/domain/entity"
	liqentity "courier_backend/internal/feature/liquidations/domain/entity"
	pkgentity "courier_backend/internal/feature/packages/domain/entity"
	cfgentity "courier_backend/internal/feature/sysconfig/domain/entity"
)

// OpenDB connects to the configured database, retrying for up to a
// minute, and optionally runs migrations.
//
// DB_DRIVER selects postgres (default) or mysql; connection parameters
// come from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.
func OpenDB() *gorm.DB {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	var open func() (*gorm.DB, error)
	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, host, port, name)
		open = func() (*gorm.DB, error) { return gorm.Open(gmysql.Open(dsn), &gorm.Config{}) }
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
		open = func() (*gorm.DB, error) { return gorm.Open(gpostgres.Open(dsn), &gorm.Config{}) }
	default:
		log.Fatalf("unknown DB_DRIVER %q", driver)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = open()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&pkgentity.Package{},
			&liqentity.Liquidation{},
			&liqentity.ChargeAttempt{},
			&cfgentity.SystemConfig{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
