package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/config"
)

// Item is one cart line, priced in minor currency units.
type Item struct {
	ProductID  uuid.UUID
	Name       string
	PriceCents int64
	Quantity   int
	MinOrder   int
	InStock    bool
}

// Cart is an in-memory basket. It is a pure value type; persistence lives
// with the client, pricing lives here.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem merges the quantity into an existing line or appends a new one.
func (c *Cart) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	c.items = append(c.items, item)
}

// SetQuantity replaces the quantity for a product. Zero or below removes
// the line.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the line for the product if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// ItemCount is the total unit count across all lines.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of line prices in minor currency units.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// DeliveryFee is zero at or above the free threshold, the flat fee below it.
// Empty carts carry no fee.
func (c *Cart) DeliveryFee(cfg config.DeliveryConfig) int64 {
	if len(c.items) == 0 {
		return 0
	}
	if c.Subtotal() >= int64(cfg.FreeThresholdCents) {
		return 0
	}
	return int64(cfg.FeeCents)
}

// Total is subtotal plus delivery fee.
func (c *Cart) Total(cfg config.DeliveryConfig) int64 {
	return c.Subtotal() + c.DeliveryFee(cfg)
}

// CheckoutIssue names one reason the cart cannot check out.
type CheckoutIssue struct {
	ProductID uuid.UUID `json:"productId,omitempty"`
	Reason    string    `json:"reason"`
}

// CanCheckout validates the cart against stock, minimum order multiples,
// and the delivery date window. Delivery dates must fall on or after today
// and within the configured advance window.
func (c *Cart) CanCheckout(cfg config.DeliveryConfig, deliveryDate time.Time, now time.Time) []CheckoutIssue {
	var issues []CheckoutIssue

	if len(c.items) == 0 {
		issues = append(issues, CheckoutIssue{Reason: "cart is empty"})
	}

	for _, item := range c.items {
		if !item.InStock {
			issues = append(issues, CheckoutIssue{ProductID: item.ProductID, Reason: "product out of stock"})
		}
		if item.MinOrder > 1 && item.Quantity%item.MinOrder != 0 {
			issues = append(issues, CheckoutIssue{ProductID: item.ProductID, Reason: "quantity must be a multiple of the minimum order"})
		}
	}

	// Compare calendar dates only; the request carries a bare date.
	today := calendarDay(now)
	requested := calendarDay(deliveryDate)
	if requested.Before(today) {
		issues = append(issues, CheckoutIssue{Reason: "delivery date cannot be in the past"})
	}
	latest := today.AddDate(0, 0, cfg.MaxAdvanceDays)
	if requested.After(latest) {
		issues = append(issues, CheckoutIssue{Reason: "delivery date is beyond the advance booking window"})
	}

	return issues
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
