package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sathwikreddyb/aqua-farms-backend/internal/cart"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

// Service exposes checkout and order lifecycle operations.
type Service interface {
	SubmitOrder(ctx context.Context, userID uuid.UUID, input SubmitOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	MyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

// OrderLineInput is one requested line at checkout.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// SubmitOrderInput holds the validated checkout payload. TotalCents is the
// client's claimed total; the service reprices everything and rejects a
// mismatch.
type SubmitOrderInput struct {
	Items              []OrderLineInput
	AddressID          uuid.UUID
	DeliveryDate       time.Time
	DeliverySlot       string
	TotalCents         int64
	IsRecurring        bool
	RecurringFrequency *enums.RecurringFrequency
}

type productReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type addressReader interface {
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	products  productReader
	addresses addressReader
	delivery  config.DeliveryConfig
	now       func() time.Time
}

// NewService constructs an orders service instance.
func NewService(repo *Repository, dbClient *db.Client, products productReader, addresses addressReader, delivery config.DeliveryConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address reader required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		products:  products,
		addresses: addresses,
		delivery:  delivery,
		now:       time.Now,
	}, nil
}

// SubmitOrder reprices the cart, validates the delivery window, snapshots
// the shipping address, and writes the order atomically.
func (s *service) SubmitOrder(ctx context.Context, userID uuid.UUID, input SubmitOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if strings.TrimSpace(input.DeliverySlot) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery slot is required")
	}
	if input.DeliveryDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date is required")
	}
	if input.IsRecurring {
		if input.RecurringFrequency == nil || !input.RecurringFrequency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid recurring frequency")
		}
	} else if input.RecurringFrequency != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recurring frequency requires a recurring order")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, line := range input.Items {
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

	basket := cart.New()
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]string{"productId": line.ProductID.String()})
		}
		basket.AddItem(cart.Item{
			ProductID:  product.ID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   line.Quantity,
			MinOrder:   product.MinOrder,
			InStock:    product.InStock,
		})
		items = append(items, models.OrderItem{
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	if issues := basket.CanCheckout(s.delivery, input.DeliveryDate, s.now()); len(issues) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order cannot be placed").WithDetails(issues)
	}

	total := basket.Total(s.delivery)
	if input.TotalCents != total {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total does not match server pricing").
			WithDetails(map[string]int64{"expected": total, "received": input.TotalCents})
	}

	addr, err := s.addresses.FindByIDForUser(ctx, input.AddressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load address")
	}

	order := &models.Order{
		UserID:             userID,
		Status:             enums.OrderStatusPlaced,
		TotalCents:         total,
		DeliveryDate:       input.DeliveryDate,
		DeliverySlot:       strings.TrimSpace(input.DeliverySlot),
		ShippingAddressID:  addr.ID,
		ShippingStreet:     addr.Street,
		ShippingCity:       addr.City,
		ShippingState:      addr.State,
		ShippingPincode:    addr.Pincode,
		ShippingPhone:      addr.Phone,
		IsRecurring:        input.IsRecurring,
		RecurringFrequency: input.RecurringFrequency,
		Items:              items,
	}
	if addr.FullName != nil {
		order.ShippingName = *addr.FullName
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, order.ID)
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return order, nil
}

func (s *service) MyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return out, nil
}

func (s *service) AllOrders(ctx context.Context) ([]models.Order, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return out, nil
}

// UpdateStatus moves an order through its lifecycle. Delivered and cancelled
// orders are final.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var updated *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := txRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
		}

		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is already in a final state").
				WithDetails(map[string]string{"status": order.Status.String()})
		}

		if err := txRepo.UpdateStatus(ctx, order.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) reload(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload order")
	}
	return order, nil
}
