package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	dbtypes "github.com/sathwikreddyb/aqua-farms-backend/pkg/db/types"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

// Service exposes catalog read and back-office write operations.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Category    enums.ProductCategory
	Size        string
	Volume      string
	PriceCents  int64
	Unit        string
	Description string
	Image       string
	InStock     bool
	UseCase     enums.UseCase
	Returnable  bool
	MinOrder    int
	Badge       *string
	Tags        []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Category    *enums.ProductCategory
	Size        *string
	Volume      *string
	PriceCents  *int64
	Unit        *string
	Description *string
	Image       *string
	InStock     *bool
	UseCase     *enums.UseCase
	Returnable  *bool
	MinOrder    *int
	Badge       *string
	Tags        *[]string
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validateProductBasics(input.Name, input.Category, input.UseCase, input.PriceCents, input.MinOrder); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Size:        strings.TrimSpace(input.Size),
		Volume:      strings.TrimSpace(input.Volume),
		PriceCents:  input.PriceCents,
		Unit:        strings.TrimSpace(input.Unit),
		Description: input.Description,
		Image:       strings.TrimSpace(input.Image),
		InStock:     input.InStock,
		UseCase:     input.UseCase,
		Returnable:  input.Returnable,
		MinOrder:    input.MinOrder,
		Badge:       trimPtr(input.Badge),
		Tags:        dbtypes.StringList(input.Tags),
	}
	if product.Tags == nil {
		product.Tags = dbtypes.StringList{}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyUpdateToProduct(product, input); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return saved, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func validateProductBasics(name string, category enums.ProductCategory, useCase enums.UseCase, priceCents int64, minOrder int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if !useCase.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid use case")
	}
	if priceCents <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if minOrder < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minOrder must be at least 1")
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = trimmed
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		product.Category = *input.Category
	}
	if input.Size != nil {
		product.Size = strings.TrimSpace(*input.Size)
	}
	if input.Volume != nil {
		product.Volume = strings.TrimSpace(*input.Volume)
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.UseCase != nil {
		if !input.UseCase.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid use case")
		}
		product.UseCase = *input.UseCase
	}
	if input.Returnable != nil {
		product.Returnable = *input.Returnable
	}
	if input.MinOrder != nil {
		if *input.MinOrder < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "minOrder must be at least 1")
		}
		product.MinOrder = *input.MinOrder
	}
	if input.Badge != nil {
		product.Badge = trimPtr(input.Badge)
	}
	if input.Tags != nil {
		tags := dbtypes.StringList(*input.Tags)
		if tags == nil {
			tags = dbtypes.StringList{}
		}
		product.Tags = tags
	}
	return nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
