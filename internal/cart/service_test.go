package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

type fakeProductReader struct {
	rows map[uuid.UUID]models.Product
}

func (f *fakeProductReader) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestQuoteCart(t *testing.T) {
	can := models.Product{ID: uuid.New(), Name: "20L Can", PriceCents: 8000, MinOrder: 1, InStock: true}
	bottlePack := models.Product{ID: uuid.New(), Name: "1L Pack", PriceCents: 30000, MinOrder: 1, InStock: true}
	reader := &fakeProductReader{rows: map[uuid.UUID]models.Product{
		can.ID:        can,
		bottlePack.ID: bottlePack,
	}}

	svc, err := NewService(reader, testDeliveryConfig())
	require.NoError(t, err)

	quote, err := svc.QuoteCart(context.Background(), []QuoteLine{
		{ProductID: can.ID, Quantity: 2},
		{ProductID: bottlePack.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, quote.ItemCount)
	assert.Equal(t, int64(46000), quote.SubtotalCents)
	assert.Equal(t, int64(5000), quote.DeliveryFee)
	assert.Equal(t, int64(51000), quote.TotalCents)
	require.Len(t, quote.Items, 2)
	assert.Equal(t, int64(16000), quote.Items[0].LineTotal)
}

func TestQuoteCartFreeDelivery(t *testing.T) {
	pack := models.Product{ID: uuid.New(), Name: "Bulk", PriceCents: 25000, MinOrder: 1, InStock: true}
	reader := &fakeProductReader{rows: map[uuid.UUID]models.Product{pack.ID: pack}}

	svc, err := NewService(reader, testDeliveryConfig())
	require.NoError(t, err)

	quote, err := svc.QuoteCart(context.Background(), []QuoteLine{{ProductID: pack.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), quote.SubtotalCents)
	assert.Equal(t, int64(0), quote.DeliveryFee)
	assert.Equal(t, int64(50000), quote.TotalCents)
}

func TestQuoteCartUnknownProduct(t *testing.T) {
	reader := &fakeProductReader{rows: map[uuid.UUID]models.Product{}}
	svc, err := NewService(reader, testDeliveryConfig())
	require.NoError(t, err)

	_, err = svc.QuoteCart(context.Background(), []QuoteLine{{ProductID: uuid.New(), Quantity: 1}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestQuoteCartValidation(t *testing.T) {
	reader := &fakeProductReader{rows: map[uuid.UUID]models.Product{}}
	svc, err := NewService(reader, testDeliveryConfig())
	require.NoError(t, err)

	_, err = svc.QuoteCart(context.Background(), nil)
	require.Error(t, err)

	_, err = svc.QuoteCart(context.Background(), []QuoteLine{{ProductID: uuid.New(), Quantity: 0}})
	require.Error(t, err)
}
