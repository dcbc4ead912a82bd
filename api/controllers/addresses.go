package controllers

import (
	"net/http"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/api/validators"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/address"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type addressRequest struct {
	Label     string  `json:"label,omitempty"`
	FullName  *string `json:"fullName,omitempty"`
	Street    string  `json:"street" validate:"required"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required"`
	Pincode   string  `json:"pincode" validate:"required"`
	Phone     string  `json:"phone,omitempty"`
	IsDefault bool    `json:"isDefault,omitempty"`
}

type addressUpdateRequest struct {
	Label     *string `json:"label,omitempty"`
	FullName  *string `json:"fullName,omitempty"`
	Street    *string `json:"street,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Pincode   *string `json:"pincode,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
}

// ListAddresses returns the caller's address book, default first.
func ListAddresses(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addresses, err := svc.ListAddresses(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, addresses)
	}
}

// CreateAddress adds an address to the caller's book.
func CreateAddress(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateAddress(r.Context(), userID, address.CreateAddressInput{
			Label:     payload.Label,
			FullName:  payload.FullName,
			Street:    payload.Street,
			City:      payload.City,
			State:     payload.State,
			Pincode:   payload.Pincode,
			Phone:     payload.Phone,
			IsDefault: payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateAddress edits an address the caller owns.
func UpdateAddress(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addressUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateAddress(r.Context(), userID, addressID, address.UpdateAddressInput{
			Label:     payload.Label,
			FullName:  payload.FullName,
			Street:    payload.Street,
			City:      payload.City,
			State:     payload.State,
			Pincode:   payload.Pincode,
			Phone:     payload.Phone,
			IsDefault: payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteAddress removes an address the caller owns.
func DeleteAddress(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAddress(r.Context(), userID, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "address deleted"})
	}
}
