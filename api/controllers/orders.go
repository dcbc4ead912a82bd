package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/api/validators"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/orders"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

const deliveryDateLayout = "2006-01-02"

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Items              []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount        int64              `json:"totalAmount" validate:"required,min=1"`
	DeliveryDate       string             `json:"deliveryDate" validate:"required"`
	DeliverySlot       string             `json:"deliverySlot" validate:"required"`
	ShippingAddressID  string             `json:"shippingAddressId" validate:"required"`
	IsRecurring        bool               `json:"isRecurring,omitempty"`
	RecurringFrequency *string            `json:"recurringFrequency,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder converts the checkout payload into a persisted order.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toSubmitInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.SubmitOrder(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"orderId": order.ID.String()})
	}
}

// MyOrders lists the caller's orders with items and products expanded.
func MyOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.MyOrders(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// GetOrder returns one of the caller's orders.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// AllOrders lists every order for the back office.
func AllOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.AllOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}

// UpdateOrderStatus moves an order through its lifecycle.
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func (p createOrderRequest) toSubmitInput() (orders.SubmitOrderInput, error) {
	addressID, err := uuid.Parse(p.ShippingAddressID)
	if err != nil {
		return orders.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address id")
	}

	deliveryDate, err := time.Parse(deliveryDateLayout, p.DeliveryDate)
	if err != nil {
		return orders.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery date")
	}

	items := make([]orders.OrderLineInput, 0, len(p.Items))
	for _, item := range p.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return orders.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		items = append(items, orders.OrderLineInput{ProductID: productID, Quantity: item.Quantity})
	}

	input := orders.SubmitOrderInput{
		Items:        items,
		AddressID:    addressID,
		DeliveryDate: deliveryDate,
		DeliverySlot: p.DeliverySlot,
		TotalCents:   p.TotalAmount,
		IsRecurring:  p.IsRecurring,
	}
	if p.RecurringFrequency != nil {
		freq, err := enums.ParseRecurringFrequency(strings.TrimSpace(*p.RecurringFrequency))
		if err != nil {
			return orders.SubmitOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid recurring frequency")
		}
		input.RecurringFrequency = &freq
	}
	return input, nil
}
