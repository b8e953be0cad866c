// Package adapters はpackagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"courier_backend/internal/feature/packages/domain/entity"
	"courier_backend/internal/feature/packages/usecase"
)

// packageGorm はPackageRepositoryインターフェースのGORM実装です。
type packageGorm struct {
	db *gorm.DB
}

// packageGormがPackageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PackageRepository = (*packageGorm)(nil)

// NewPackageGorm は指定されたgorm.DB接続でpackageGormの新しいインスタンスを生成します。
func NewPackageGorm(db *gorm.DB) *packageGorm {
	return &packageGorm{db: db}
}

// Create はパッケージをデータベースに追加します。
// 追跡番号が重複している場合、usecase.ErrTrackingAlreadyExistsを返します。
func (r *packageGorm) Create(ctx context.Context, p *entity.Package) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return usecase.ErrTrackingAlreadyExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrTrackingAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrTrackingAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID はIDでパッケージを取得します。
func (r *packageGorm) FindByID(ctx context.Context, id uint) (*entity.Package, error) {
	var p entity.Package
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPackageNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByTracking は追跡番号でパッケージを取得します。
func (r *packageGorm) FindByTracking(ctx context.Context, tracking string) (*entity.Package, error) {
	var p entity.Package
	if err := r.db.WithContext(ctx).Where("tracking = ?", tracking).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPackageNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List は作成日の新しい順に全パッケージを取得します。
func (r *packageGorm) List(ctx context.Context) ([]*entity.Package, error) {
	var pkgs []*entity.Package
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// ListByClient は指定クライアントのパッケージを作成日の新しい順に取得します。
func (r *packageGorm) ListByClient(ctx context.Context, clientID uint) ([]*entity.Package, error) {
	var pkgs []*entity.Package
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// UpdateStatus はパッケージのステータスを更新します。
// 対象が存在しない場合、usecase.ErrPackageNotFoundを返します。
func (r *packageGorm) UpdateStatus(ctx context.Context, id uint, status entity.Status) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Package{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrPackageNotFound
	}
	return nil
}
