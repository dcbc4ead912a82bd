package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
)

// Order is created at checkout and never deleted. The shipping address is
// snapshotted onto the row so later edits to the address do not rewrite
// order history.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:placed" json:"status"`
	TotalCents   int64             `gorm:"column:total_cents;not null" json:"totalAmount"`
	DeliveryDate time.Time         `gorm:"column:delivery_date;type:date;not null" json:"deliveryDate"`
	DeliverySlot string            `gorm:"column:delivery_slot;not null" json:"deliverySlot"`

	ShippingAddressID uuid.UUID `gorm:"column:shipping_address_id;type:uuid;not null" json:"shippingAddressId"`
	ShippingName      string    `gorm:"column:shipping_name" json:"shippingName"`
	ShippingStreet    string    `gorm:"column:shipping_street;type:text;not null" json:"shippingStreet"`
	ShippingCity      string    `gorm:"column:shipping_city;not null" json:"shippingCity"`
	ShippingState     string    `gorm:"column:shipping_state;not null" json:"shippingState"`
	ShippingPincode   string    `gorm:"column:shipping_pincode;not null" json:"shippingPincode"`
	ShippingPhone     string    `gorm:"column:shipping_phone" json:"shippingPhone"`

	IsRecurring        bool                      `gorm:"column:is_recurring;not null;default:false" json:"isRecurring"`
	RecurringFrequency *enums.RecurringFrequency `gorm:"column:recurring_frequency" json:"recurringFrequency,omitempty"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is written atomically with its order. The price is the catalog
// price at order time, not a live reference.
type OrderItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"orderId"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Quantity   int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	PriceCents int64     `gorm:"column:price_cents;not null" json:"price"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
