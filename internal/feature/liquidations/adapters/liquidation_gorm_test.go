package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"courier_backend/internal/feature/liquidations/domain/entity"
	"courier_backend/internal/feature/liquidations/usecase"
	pkgentity "courier_backend/internal/feature/packages/domain/entity"
)

// setupTestDB はインメモリSQLiteでテスト用DBを初期化します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pkgentity.Package{}, &entity.Liquidation{}, &entity.ChargeAttempt{}))
	return db
}

func createPackage(t *testing.T, db *gorm.DB, clientID uint) *pkgentity.Package {
	t.Helper()
	p := &pkgentity.Package{
		Tracking: fmt.Sprintf("TRK-%d-%d", clientID, time.Now().UnixNano()),
		ClientID: clientID,
		Status:   pkgentity.StatusInWarehouse,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func createLiquidation(t *testing.T, db *gorm.DB, packageID uint, amount float64) *entity.Liquidation {
	t.Helper()
	l := &entity.Liquidation{PackageID: packageID, Amount: amount, Status: entity.StatusPending}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestLiquidationGorm_Create_MissingPackage(t *testing.T) {
	// 外部キー制約を有効にしたSQLiteで参照整合性違反を再現する
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pkgentity.Package{}, &entity.Liquidation{}))

	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	err = repo.Create(ctx, &entity.Liquidation{PackageID: 9999, Amount: 10, Status: entity.StatusPending})
	assert.ErrorIs(t, err, usecase.ErrPackageMissing)

	p := createPackage(t, db, 1)
	assert.NoError(t, repo.Create(ctx, &entity.Liquidation{PackageID: p.ID, Amount: 10, Status: entity.StatusPending}))
}

func TestLiquidationGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	p := createPackage(t, db, 1)
	created := createLiquidation(t, db, p.ID, 120.50)

	t.Run("found with package preloaded", func(t *testing.T) {
		l, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 120.50, l.Amount)
		require.NotNil(t, l.Package)
		assert.Equal(t, p.Tracking, l.Package.Tracking)
	})

	t.Run("not found", func(t *testing.T) {
		l, err := repo.FindByID(ctx, 9999)
		assert.Nil(t, l)
		assert.ErrorIs(t, err, usecase.ErrLiquidationNotFound)
	})
}

func TestLiquidationGorm_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	p := createPackage(t, db, 1)

	older := &entity.Liquidation{PackageID: p.ID, Amount: 10, Status: entity.StatusPending, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(older).Error)
	newer := createLiquidation(t, db, p.ID, 20)

	ls, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	// 新しい順
	assert.Equal(t, newer.ID, ls[0].ID)
	assert.Equal(t, older.ID, ls[1].ID)
	require.NotNil(t, ls[0].Package)
}

func TestLiquidationGorm_ListByClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	mine := createPackage(t, db, 1)
	theirs := createPackage(t, db, 2)
	createLiquidation(t, db, mine.ID, 10)
	createLiquidation(t, db, theirs.ID, 20)

	ls, err := repo.ListByClient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, mine.ID, ls[0].PackageID)

	empty, err := repo.ListByClient(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLiquidationGorm_MarkPaid(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	p := createPackage(t, db, 1)

	t.Run("pending transitions", func(t *testing.T) {
		l := createLiquidation(t, db, p.ID, 10)

		require.NoError(t, repo.MarkPaid(ctx, l.ID, "tx-1"))

		got, err := repo.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaid, got.Status)
		assert.Equal(t, "tx-1", got.TransactionID)
	})

	t.Run("already paid conflicts", func(t *testing.T) {
		l := createLiquidation(t, db, p.ID, 10)
		require.NoError(t, repo.MarkPaid(ctx, l.ID, "tx-1"))

		err := repo.MarkPaid(ctx, l.ID, "tx-2")
		assert.ErrorIs(t, err, usecase.ErrLiquidationConflict)

		// The first transaction id survives
		got, ferr := repo.FindByID(ctx, l.ID)
		require.NoError(t, ferr)
		assert.Equal(t, "tx-1", got.TransactionID)
	})

	t.Run("cancelled conflicts", func(t *testing.T) {
		l := createLiquidation(t, db, p.ID, 10)
		require.NoError(t, repo.MarkCancelled(ctx, l.ID))

		assert.ErrorIs(t, repo.MarkPaid(ctx, l.ID, "tx-1"), usecase.ErrLiquidationConflict)
	})

	t.Run("missing row not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.MarkPaid(ctx, 9999, "tx-1"), usecase.ErrLiquidationNotFound)
	})
}

func TestLiquidationGorm_MarkCancelled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLiquidationGorm(db)
	ctx := context.Background()

	p := createPackage(t, db, 1)
	l := createLiquidation(t, db, p.ID, 10)

	require.NoError(t, repo.MarkCancelled(ctx, l.ID))

	got, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, got.Status)

	assert.ErrorIs(t, repo.MarkCancelled(ctx, l.ID), usecase.ErrLiquidationConflict)
}

func TestChargeAttemptGorm(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChargeAttemptGorm(db)
	ctx := context.Background()

	p := createPackage(t, db, 1)
	l := createLiquidation(t, db, p.ID, 10)

	a := &entity.ChargeAttempt{
		LiquidationID:  l.ID,
		IdempotencyKey: "idem-1",
		Amount:         10,
		Status:         entity.AttemptInitiated,
	}
	require.NoError(t, repo.Create(ctx, a))
	require.NotZero(t, a.ID)

	t.Run("duplicate idempotency key rejected", func(t *testing.T) {
		err := repo.Create(ctx, &entity.ChargeAttempt{
			LiquidationID:  l.ID,
			IdempotencyKey: "idem-1",
			Amount:         10,
			Status:         entity.AttemptInitiated,
		})
		assert.Error(t, err)
	})

	t.Run("set outcome", func(t *testing.T) {
		require.NoError(t, repo.SetOutcome(ctx, a.ID, entity.AttemptSucceeded, "tx-1", ""))

		var got entity.ChargeAttempt
		require.NoError(t, db.First(&got, a.ID).Error)
		assert.Equal(t, entity.AttemptSucceeded, got.Status)
		assert.Equal(t, "tx-1", got.TransactionID)
	})
}
