package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sathwikreddyb/aqua-farms-backend/api/responses"
	"github.com/sathwikreddyb/aqua-farms-backend/api/validators"
	"github.com/sathwikreddyb/aqua-farms-backend/internal/catalog"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Size        string   `json:"size" validate:"required"`
	Volume      string   `json:"volume,omitempty"`
	Price       int64    `json:"price" validate:"required,min=1"`
	Unit        string   `json:"unit,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	UseCase     string   `json:"useCase" validate:"required"`
	Returnable  *bool    `json:"returnable,omitempty"`
	MinOrder    *int     `json:"minOrder,omitempty" validate:"omitempty,min=1"`
	Badge       *string  `json:"badge,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type productUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Volume      *string   `json:"volume,omitempty"`
	Price       *int64    `json:"price,omitempty" validate:"omitempty,min=1"`
	Unit        *string   `json:"unit,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	InStock     *bool     `json:"inStock,omitempty"`
	UseCase     *string   `json:"useCase,omitempty"`
	Returnable  *bool     `json:"returnable,omitempty"`
	MinOrder    *int      `json:"minOrder,omitempty" validate:"omitempty,min=1"`
	Badge       *string   `json:"badge,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// ListProducts returns the catalog, optionally filtered by query params.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := filterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct returns one catalog entry.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CreateProduct handles admin catalog inserts.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles admin catalog edits.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a catalog entry.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "product deleted"})
	}
}

func (p productRequest) toCreateInput() (catalog.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(strings.TrimSpace(p.Category))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	useCase, err := enums.ParseUseCase(strings.TrimSpace(p.UseCase))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid use case")
	}

	input := catalog.CreateProductInput{
		Name:        p.Name,
		Category:    category,
		Size:        p.Size,
		Volume:      p.Volume,
		PriceCents:  p.Price,
		Unit:        p.Unit,
		Description: p.Description,
		Image:       p.Image,
		InStock:     true,
		UseCase:     useCase,
		MinOrder:    1,
		Badge:       p.Badge,
		Tags:        p.Tags,
	}
	if p.InStock != nil {
		input.InStock = *p.InStock
	}
	if p.Returnable != nil {
		input.Returnable = *p.Returnable
	}
	if p.MinOrder != nil {
		input.MinOrder = *p.MinOrder
	}
	return input, nil
}

func (p productUpdateRequest) toUpdateInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:        p.Name,
		Size:        p.Size,
		Volume:      p.Volume,
		PriceCents:  p.Price,
		Unit:        p.Unit,
		Description: p.Description,
		Image:       p.Image,
		InStock:     p.InStock,
		Returnable:  p.Returnable,
		MinOrder:    p.MinOrder,
		Badge:       p.Badge,
		Tags:        p.Tags,
	}
	if p.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*p.Category))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if p.UseCase != nil {
		useCase, err := enums.ParseUseCase(strings.TrimSpace(*p.UseCase))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid use case")
		}
		input.UseCase = &useCase
	}
	return input, nil
}

func filterFromQuery(r *http.Request) (catalog.ListFilter, error) {
	var filter catalog.ListFilter

	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filter.Category = &category
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("useCase")); raw != "" {
		useCase, err := enums.ParseUseCase(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid use case")
		}
		filter.UseCase = &useCase
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("inStock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inStock flag")
		}
		filter.InStock = &inStock
	}
	return filter, nil
}

func pathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
