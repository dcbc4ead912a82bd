package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	addressbook "github.com/sathwikreddyb/aqua-farms-backend/internal/address"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/catalog"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	dbtypes "github.com/sathwikreddyb/aqua-farms-backend/pkg/db/types"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

func testDeliveryConfig() config.DeliveryConfig {
	return config.DeliveryConfig{
		FreeThresholdCents: 50000,
		FeeCents:           5000,
		MaxAdvanceDays:     30,
	}
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	))
	return conn
}

func newOrdersService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(
		NewRepository(conn),
		db.FromGorm(conn),
		catalog.NewRepository(conn),
		addressbook.NewRepository(conn),
		testDeliveryConfig(),
	)
	require.NoError(t, err)
	return svc
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, price int64, minOrder int, inStock bool) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       "20L Can",
		Category:   enums.ProductCategoryCan,
		Size:       "20L",
		PriceCents: price,
		InStock:    inStock,
		UseCase:    enums.UseCaseFamily,
		MinOrder:   minOrder,
		Tags:       dbtypes.StringList{},
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func mustCreateAddress(t *testing.T, conn *gorm.DB, userID uuid.UUID) *models.Address {
	t.Helper()

	name := "Asha Rao"
	addr := &models.Address{
		UserID:    userID,
		Label:     "Home",
		FullName:  &name,
		Street:    "12 Lake View Road",
		City:      "Hyderabad",
		State:     "Telangana",
		Pincode:   "500001",
		Phone:     "9876543210",
		IsDefault: true,
	}
	require.NoError(t, conn.Create(addr).Error)
	return addr
}

func validSubmitInput(product *models.Product, addr *models.Address, qty int, total int64) SubmitOrderInput {
	return SubmitOrderInput{
		Items:        []OrderLineInput{{ProductID: product.ID, Quantity: qty}},
		AddressID:    addr.ID,
		DeliveryDate: time.Now().AddDate(0, 0, 1),
		DeliverySlot: "8:00 AM - 10:00 AM",
		TotalCents:   total,
	}
}

func TestSubmitOrder(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	// 2 x 8000 = 16000 subtotal, below threshold so fee applies.
	order, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 2, 21000))
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusPlaced, order.Status)
	assert.Equal(t, int64(21000), order.TotalCents)
	assert.Equal(t, addr.ID, order.ShippingAddressID)
	assert.Equal(t, "Asha Rao", order.ShippingName)
	assert.Equal(t, "Hyderabad", order.ShippingCity)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(8000), order.Items[0].PriceCents)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestSubmitOrderSnapshotSurvivesAddressEdit(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	order, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 2, 21000))
	require.NoError(t, err)

	require.NoError(t, conn.Model(addr).Update("city", "Secunderabad").Error)

	reloaded, err := svc.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hyderabad", reloaded.ShippingCity)
}

func TestSubmitOrderTotalMismatch(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	_, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 2, 16000))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSubmitOrderFreeDeliveryThreshold(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 25000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	order, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 2, 50000))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), order.TotalCents)
}

func TestSubmitOrderMinOrderMultiple(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 2, true)
	addr := mustCreateAddress(t, conn, userID)

	_, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 3, 29000))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 4, 37000))
	require.NoError(t, err)
}

func TestSubmitOrderOutOfStock(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, false)
	addr := mustCreateAddress(t, conn, userID)

	_, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 1, 13000))
	require.Error(t, err)
}

func TestSubmitOrderDateWindow(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	t.Run("pastDate", func(t *testing.T) {
		input := validSubmitInput(product, addr, 2, 21000)
		input.DeliveryDate = time.Now().AddDate(0, 0, -1)
		_, err := svc.SubmitOrder(ctx, userID, input)
		require.Error(t, err)
	})

	t.Run("tooFarOut", func(t *testing.T) {
		input := validSubmitInput(product, addr, 2, 21000)
		input.DeliveryDate = time.Now().AddDate(0, 0, 45)
		_, err := svc.SubmitOrder(ctx, userID, input)
		require.Error(t, err)
	})
}

func TestSubmitOrderStrangerAddress(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, uuid.New())

	_, err := svc.SubmitOrder(ctx, uuid.New(), validSubmitInput(product, addr, 2, 21000))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSubmitOrderRecurringValidation(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	t.Run("recurringWithoutFrequency", func(t *testing.T) {
		input := validSubmitInput(product, addr, 2, 21000)
		input.IsRecurring = true
		_, err := svc.SubmitOrder(ctx, userID, input)
		require.Error(t, err)
	})

	t.Run("recurringWeekly", func(t *testing.T) {
		freq := enums.RecurringWeekly
		input := validSubmitInput(product, addr, 2, 21000)
		input.IsRecurring = true
		input.RecurringFrequency = &freq
		order, err := svc.SubmitOrder(ctx, userID, input)
		require.NoError(t, err)
		assert.True(t, order.IsRecurring)
		require.NotNil(t, order.RecurringFrequency)
		assert.Equal(t, enums.RecurringWeekly, *order.RecurringFrequency)
	})
}

func TestMyOrdersScoping(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	aliceAddr := mustCreateAddress(t, conn, alice)
	bobAddr := mustCreateAddress(t, conn, bob)

	_, err := svc.SubmitOrder(ctx, alice, validSubmitInput(product, aliceAddr, 2, 21000))
	require.NoError(t, err)
	_, err = svc.SubmitOrder(ctx, bob, validSubmitInput(product, bobAddr, 1, 13000))
	require.NoError(t, err)

	mine, err := svc.MyOrders(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice, mine[0].UserID)

	all, err := svc.AllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()
	userID := uuid.New()

	product := mustCreateProduct(t, conn, 8000, 1, true)
	addr := mustCreateAddress(t, conn, userID)

	order, err := svc.SubmitOrder(ctx, userID, validSubmitInput(product, addr, 2, 21000))
	require.NoError(t, err)

	packed, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPacked)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPacked, packed.Status)

	delivered, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, delivered.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusPlaced)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusValidation(t *testing.T) {
	conn := setupOrdersTestDB(t)
	svc := newOrdersService(t, conn)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, uuid.New(), enums.OrderStatus("shipped"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.UpdateStatus(ctx, uuid.New(), enums.OrderStatusPacked)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
