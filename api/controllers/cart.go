package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/api/validators"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/cart"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type quoteRequest struct {
	Items []quoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

type quoteItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// QuoteCart reprices a client cart against the live catalog so the client
// has an authoritative total before checkout.
func QuoteCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]cart.QuoteLine, 0, len(payload.Items))
		for _, item := range payload.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			lines = append(lines, cart.QuoteLine{ProductID: productID, Quantity: item.Quantity})
		}

		quote, err := svc.QuoteCart(r.Context(), lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
