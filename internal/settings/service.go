package settings

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/db/models"
	pkgerrors "github.com/sathwikreddyb/aqua-farms-backend/pkg/errors"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/logger"
)

// Default content written on first boot. Structured values are stored as
// JSON strings.
var defaultSettings = map[string]string{
	"site_name":        "Aqua Farms",
	"contact_email":    "support@aquafarms.com",
	"contact_phone":    "+91 98765 43210",
	"address_street":   "123 Aqua Street",
	"address_city":     "Water City",
	"address_state":    "Delhi",
	"address_pincode":  "110001",
	"social_facebook":  "https://facebook.com/aquafarms",
	"social_instagram": "https://instagram.com/aquafarms",
	"social_twitter":   "https://twitter.com/aquafarms",
	"about_subtitle":   "Bringing pure, safe drinking water to every home and office.",
	"about_mission":    "To deliver the highest quality mineral water to homes, offices, and institutions, ensuring health and hydration for all.",
	"about_vision":     "To be the most trusted water supplier in the region, known for quality and reliability.",
	"about_team":       "[]",
}

const maxConcurrentUpserts = 4

// Service exposes the editable site content store.
type Service interface {
	GetAll(ctx context.Context) (map[string]string, error)
	UpsertMany(ctx context.Context, values map[string]string) (map[string]string, error)
	Seed(ctx context.Context) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a settings service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetAll flattens the settings table into a key/value map.
func (s *service) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list settings")
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// UpsertMany writes the provided pairs concurrently and returns the full map.
func (s *service) UpsertMany(ctx context.Context, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no settings provided")
	}
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting keys cannot be empty")
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentUpserts)
	for key, value := range values {
		key, value := key, value
		group.Go(func() error {
			return s.repo.Upsert(groupCtx, &models.SiteSetting{Key: key, Value: value})
		})
	}
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert settings")
	}

	return s.GetAll(ctx)
}

// Seed writes the default content once, when the table is empty.
func (s *service) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count settings")
	}
	if count > 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentUpserts)
	for key, value := range defaultSettings {
		key, value := key, value
		group.Go(func() error {
			return s.repo.Upsert(groupCtx, &models.SiteSetting{Key: key, Value: value})
		})
	}
	if err := group.Wait(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed settings")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "default site settings initialized")
	}
	return nil
}
