package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

// QuoteLine is one priced line in a quote request.
type QuoteLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Quote is the server-priced view of a cart.
type Quote struct {
	Items         []QuotedItem `json:"items"`
	ItemCount     int          `json:"itemCount"`
	SubtotalCents int64        `json:"subtotal"`
	DeliveryFee   int64        `json:"deliveryFee"`
	TotalCents    int64        `json:"total"`
}

// QuotedItem echoes one line with the catalog price applied.
type QuotedItem struct {
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price"`
	Quantity   int       `json:"quantity"`
	LineTotal  int64     `json:"lineTotal"`
}

type productReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service prices carts against the live catalog.
type Service interface {
	QuoteCart(ctx context.Context, lines []QuoteLine) (*Quote, error)
}

type service struct {
	products productReader
	delivery config.DeliveryConfig
}

// NewService constructs a cart pricing service.
func NewService(products productReader, delivery config.DeliveryConfig) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{products: products, delivery: delivery}, nil
}

// QuoteCart reprices the submitted lines using catalog prices. Unknown
// products fail the whole quote.
func (s *service) QuoteCart(ctx context.Context, lines []QuoteLine) (*Quote, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	basket := New()
	quoted := make([]QuotedItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"productId": line.ProductID.String()})
		}
		basket.AddItem(Item{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   line.Quantity,
			MinOrder:   product.MinOrder,
			InStock:    product.InStock,
		})
		quoted = append(quoted, QuotedItem{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   line.Quantity,
			LineTotal:  product.PriceCents * int64(line.Quantity),
		})
	}

	return &Quote{
		Items:         quoted,
		ItemCount:     basket.ItemCount(),
		SubtotalCents: basket.Subtotal(),
		DeliveryFee:   basket.DeliveryFee(s.delivery),
		TotalCents:    basket.Total(s.delivery),
	}, nil
}
