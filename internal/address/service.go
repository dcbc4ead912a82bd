package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
)

// Service exposes address book operations scoped to the acting user.
type Service interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, input CreateAddressInput) (*models.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// CreateAddressInput holds the validated payload for a new address.
type CreateAddressInput struct {
	Label     string
	FullName  *string
	Street    string
	City      string
	State     string
	Pincode   string
	Phone     string
	IsDefault bool
}

// UpdateAddressInput holds optional mutation values for an address.
type UpdateAddressInput struct {
	Label     *string
	FullName  *string
	Street    *string
	City      *string
	State     *string
	Pincode   *string
	Phone     *string
	IsDefault *bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an address service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list addresses")
	}
	return addresses, nil
}

func (s *service) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	addr, err := s.repo.FindByIDForUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load address")
	}
	return addr, nil
}

func (s *service) CreateAddress(ctx context.Context, userID uuid.UUID, input CreateAddressInput) (*models.Address, error) {
	if err := validateAddressBasics(input.Street, input.City, input.State, input.Pincode); err != nil {
		return nil, err
	}

	addr := &models.Address{
		UserID:    userID,
		Label:     strings.TrimSpace(input.Label),
		FullName:  trimPtr(input.FullName),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Pincode:   strings.TrimSpace(input.Pincode),
		Phone:     strings.TrimSpace(input.Phone),
		IsDefault: input.IsDefault,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		// The first address a user saves becomes their default.
		count, err := txRepo.CountByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count addresses")
		}
		if count == 0 {
			addr.IsDefault = true
		}

		if addr.IsDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear default address")
			}
		}

		if _, err := txRepo.Create(ctx, addr); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*models.Address, error) {
	var updated *models.Address

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		addr, err := txRepo.FindByIDForUser(ctx, addressID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load address")
		}

		if err := applyUpdateToAddress(addr, input); err != nil {
			return err
		}

		if input.IsDefault != nil && *input.IsDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear default address")
			}
			addr.IsDefault = true
		}

		if _, err := txRepo.Save(ctx, addr); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update address")
		}
		updated = addr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.repo.Delete(ctx, addressID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete address")
	}
	return nil
}

func validateAddressBasics(street, city, state, pincode string) error {
	if strings.TrimSpace(street) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "street is required")
	}
	if strings.TrimSpace(city) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if strings.TrimSpace(state) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "state is required")
	}
	if strings.TrimSpace(pincode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "pincode is required")
	}
	return nil
}

func applyUpdateToAddress(addr *models.Address, input UpdateAddressInput) error {
	if input.Label != nil {
		addr.Label = strings.TrimSpace(*input.Label)
	}
	if input.FullName != nil {
		addr.FullName = trimPtr(input.FullName)
	}
	if input.Street != nil {
		trimmed := strings.TrimSpace(*input.Street)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "street cannot be empty")
		}
		addr.Street = trimmed
	}
	if input.City != nil {
		trimmed := strings.TrimSpace(*input.City)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "city cannot be empty")
		}
		addr.City = trimmed
	}
	if input.State != nil {
		trimmed := strings.TrimSpace(*input.State)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "state cannot be empty")
		}
		addr.State = trimmed
	}
	if input.Pincode != nil {
		trimmed := strings.TrimSpace(*input.Pincode)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "pincode cannot be empty")
		}
		addr.Pincode = trimmed
	}
	if input.Phone != nil {
		addr.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.IsDefault != nil && !*input.IsDefault {
		addr.IsDefault = false
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
