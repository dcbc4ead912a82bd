package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathwikreddyb/aqua-farms-backend/internal/catalog"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type stubCatalogService struct {
	product   *models.Product
	lastInput catalog.CreateProductInput
	err       error
}

func (s *stubCatalogService) ListProducts(_ context.Context, _ catalog.ListFilter) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.product == nil {
		return nil, nil
	}
	return []models.Product{*s.product}, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubCatalogService) CreateProduct(_ context.Context, input catalog.CreateProductInput) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastInput = input
	return s.product, nil
}

func (s *stubCatalogService) UpdateProduct(_ context.Context, _ uuid.UUID, _ catalog.UpdateProductInput) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withPathID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       "20L Water Can",
		Category:   enums.ProductCategoryCan,
		PriceCents: 8000,
	}

	t.Run("invalid id", func(t *testing.T) {
		req := withPathID(httptest.NewRequest(http.MethodGet, "/products/abc", nil), "abc")
		rec := httptest.NewRecorder()
		GetProduct(&stubCatalogService{product: product}, logg).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := withPathID(httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil), uuid.NewString())
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		req := withPathID(httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil), product.ID.String())
		rec := httptest.NewRecorder()
		GetProduct(&stubCatalogService{product: product}, logg).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, product.ID, got.ID)
		assert.Equal(t, "20L Water Can", got.Name)
	})
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	send := func(stub *stubCatalogService, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing required fields", func(t *testing.T) {
		rec := send(&stubCatalogService{}, `{"name":"20L Water Can"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := send(&stubCatalogService{}, `{"name":"20L Water Can","category":"gigantic","size":"20L","price":8000,"useCase":"family"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("defaults applied", func(t *testing.T) {
		stub := &stubCatalogService{product: &models.Product{ID: uuid.New()}}
		rec := send(stub, `{"name":"20L Water Can","category":"can","size":"20L","price":8000,"useCase":"family"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, stub.lastInput.InStock)
		assert.Equal(t, 1, stub.lastInput.MinOrder)
		assert.Equal(t, int64(8000), stub.lastInput.PriceCents)
	})

	t.Run("unknown body field rejected", func(t *testing.T) {
		rec := send(&stubCatalogService{}, `{"name":"x","category":"can","size":"20L","price":8000,"useCase":"family","bogus":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
