package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"courier_backend/internal/feature/sysconfig/domain/entity"
	"courier_backend/internal/feature/sysconfig/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SystemConfig{}))
	return db
}

func TestConfigGorm_Get_NotFound(t *testing.T) {
	repo := NewConfigGorm(setupTestDB(t))

	cfg, err := repo.Get(context.Background())
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, usecase.ErrConfigNotFound)
}

func TestConfigGorm_Save_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConfigGorm(db)
	ctx := context.Background()

	first := &entity.SystemConfig{
		CompanyName:  "Importadora Andina",
		SupportEmail: "soporte@example.com",
		SMTP:         entity.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "mailer", Password: "secret"},
		Messages: []entity.Message{
			{ID: "m1", Title: "Bienvenido", Active: true},
		},
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Importadora Andina", got.CompanyName)
	assert.Equal(t, 587, got.SMTP.Port)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Bienvenido", got.Messages[0].Title)

	// Second save overwrites instead of inserting
	second := &entity.SystemConfig{
		CompanyName:  "Courier Express",
		SupportEmail: "help@example.com",
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Courier Express", got.CompanyName)

	var count int64
	require.NoError(t, db.Model(&entity.SystemConfig{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
