package catalog

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
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return conn
}

func newCatalogService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func validCreateInput() CreateProductInput {
	return CreateProductInput{
		Name:       "20L Water Can",
		Category:   enums.ProductCategoryCan,
		Size:       "20L",
		Volume:     "20 litres",
		PriceCents: 8000,
		Unit:       "can",
		InStock:    true,
		UseCase:    enums.UseCaseFamily,
		Returnable: true,
		MinOrder:   1,
		Tags:       []string{"popular"},
	}
}

func TestCreateProduct(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "20L Water Can", created.Name)
	assert.Equal(t, int64(8000), created.PriceCents)

	loaded, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, []string{"popular"}, []string(loaded.Tags))
}

func TestCreateProductValidation(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	t.Run("emptyName", func(t *testing.T) {
		input := validCreateInput()
		input.Name = "   "
		_, err := svc.CreateProduct(ctx, input)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})

	t.Run("badCategory", func(t *testing.T) {
		input := validCreateInput()
		input.Category = enums.ProductCategory("barrel")
		_, err := svc.CreateProduct(ctx, input)
		require.Error(t, err)
	})

	t.Run("zeroPrice", func(t *testing.T) {
		input := validCreateInput()
		input.PriceCents = 0
		_, err := svc.CreateProduct(ctx, input)
		require.Error(t, err)
	})

	t.Run("minOrderBelowOne", func(t *testing.T) {
		input := validCreateInput()
		input.MinOrder = 0
		_, err := svc.CreateProduct(ctx, input)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})
}

func TestUpdateProduct(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)

	name := "  25L Water Can  "
	price := int64(9500)
	inStock := false
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:       &name,
		PriceCents: &price,
		InStock:    &inStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "25L Water Can", updated.Name)
	assert.Equal(t, int64(9500), updated.PriceCents)
	assert.False(t, updated.InStock)
	assert.Equal(t, enums.ProductCategoryCan, updated.Category)
}

func TestUpdateProductRejectsBadMinOrder(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)

	minOrder := 0
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{MinOrder: &minOrder})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDeleteProduct(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.DeleteProduct(ctx, created.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListProductsFilters(t *testing.T) {
	svc := newCatalogService(t, setupCatalogTestDB(t))
	ctx := context.Background()

	can := validCreateInput()
	_, err := svc.CreateProduct(ctx, can)
	require.NoError(t, err)

	bottle := validCreateInput()
	bottle.Name = "500ml Bottle"
	bottle.Category = enums.ProductCategorySmall
	bottle.UseCase = enums.UseCaseIndividual
	bottle.InStock = false
	_, err = svc.CreateProduct(ctx, bottle)
	require.NoError(t, err)

	all, err := svc.ListProducts(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	category := enums.ProductCategorySmall
	small, err := svc.ListProducts(ctx, ListFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, small, 1)
	assert.Equal(t, "500ml Bottle", small[0].Name)

	inStock := true
	available, err := svc.ListProducts(ctx, ListFilter{InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "20L Water Can", available[0].Name)
}
