package dao

import (
	"context"
	"testing"

	"github.com/kiyensi/store-settings-service/internal/domain"
	"github.com/kiyensi/store-settings-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func newTestRepository(t *testing.T) domain.SettingsRepository {
	t.Helper()

	db, err := NewDBEngine(&DatabaseConfig{
		Type: "sqlite",
		Path: ":memory:",
		// :memory: 数据库随连接销毁，连接池必须固定单连接
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.AutoMigrate(db, "StoreSettings"); err != nil {
		t.Fatal(err)
	}
	return NewSettingsRepository(New(db, nil, nil))
}

func TestSettingsRepository_EmptyState(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), count)

	fields, err := repo.Get(ctx)
	assert.Nil(t, err)
	assert.Empty(t, fields)
}

func TestSettingsRepository_CreateThenGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Create(ctx, domain.DefaultSettings())
	assert.Nil(t, err)

	count, err := repo.Count(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)

	fields, err := repo.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "USD", fields[domain.FieldCurrencyCode])
	assert.Equal(t, "en", fields[domain.FieldLanguage])
	assert.EqualValues(t, 30, fields[domain.FieldProductsLimit])
}

func TestSettingsRepository_UpsertMerges(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Create(ctx, domain.DefaultSettings())
	assert.Nil(t, err)

	err = repo.Upsert(ctx, map[string]any{domain.FieldCurrencyCode: "EUR"})
	assert.Nil(t, err)

	fields, err := repo.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "EUR", fields[domain.FieldCurrencyCode])
	// 未触及的字段保持原值
	assert.Equal(t, "en", fields[domain.FieldLanguage])

	count, err := repo.Count(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSettingsRepository_UpsertCreatesWhenMissing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Upsert(ctx, map[string]any{domain.FieldLanguage: "de"})
	assert.Nil(t, err)

	count, err := repo.Count(ctx)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), count)

	fields, err := repo.Get(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "de", fields[domain.FieldLanguage])
	// 其余字段未被写入
	_, ok := fields[domain.FieldCurrencyCode]
	assert.False(t, ok)
}

func TestSettingsRepository_UpsertNullValue(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Upsert(ctx, map[string]any{domain.FieldLogoFile: "shop.png"})
	assert.Nil(t, err)

	err = repo.Upsert(ctx, map[string]any{domain.FieldLogoFile: nil})
	assert.Nil(t, err)

	fields, err := repo.Get(ctx)
	assert.Nil(t, err)
	v, ok := fields[domain.FieldLogoFile]
	assert.True(t, ok)
	assert.Nil(t, v)
}
