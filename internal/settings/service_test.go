package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.SiteSetting{}))
	return conn
}

func newSettingsService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)
	return svc
}

func TestSeedPopulatesDefaults(t *testing.T) {
	svc := newSettingsService(t, setupSettingsTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(defaultSettings))
	assert.Equal(t, "Aqua Farms", all["site_name"])
	assert.Equal(t, "[]", all["about_team"])
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newSettingsService(t, setupSettingsTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	_, err := svc.UpsertMany(ctx, map[string]string{"site_name": "Aqua Farms Deluxe"})
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aqua Farms Deluxe", all["site_name"])
}

func TestUpsertManyInsertsAndUpdates(t *testing.T) {
	svc := newSettingsService(t, setupSettingsTestDB(t))
	ctx := context.Background()

	out, err := svc.UpsertMany(ctx, map[string]string{
		"site_name":     "Aqua Farms",
		"contact_email": "hello@aquafarms.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aqua Farms", out["site_name"])

	out, err = svc.UpsertMany(ctx, map[string]string{
		"contact_email": "support@aquafarms.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "support@aquafarms.com", out["contact_email"])
	assert.Equal(t, "Aqua Farms", out["site_name"])
}

func TestUpsertManyValidation(t *testing.T) {
	svc := newSettingsService(t, setupSettingsTestDB(t))
	ctx := context.Background()

	_, err := svc.UpsertMany(ctx, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.UpsertMany(ctx, map[string]string{" ": "value"})
	require.Error(t, err)
}

func TestGetAllEmpty(t *testing.T) {
	svc := newSettingsService(t, setupSettingsTestDB(t))

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
