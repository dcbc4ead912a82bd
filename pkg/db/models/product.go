package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbtypes "github.com/sathwikreddyb/aqua-farms-backend/pkg/db/types"
	"github.com/sathwikreddyb/aqua-farms-backend/pkg/enums"
)

// Product is a catalog listing. Prices are stored in minor currency units.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Category    enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	Size        string                `gorm:"column:size;not null" json:"size"`
	Volume      string                `gorm:"column:volume" json:"volume"`
	PriceCents  int64                 `gorm:"column:price_cents;not null" json:"price"`
	Unit        string                `gorm:"column:unit" json:"unit"`
	Description string                `gorm:"column:description;type:text" json:"description"`
	Image       string                `gorm:"column:image" json:"image"`
	InStock     bool                  `gorm:"column:in_stock;not null;default:true" json:"inStock"`
	UseCase     enums.UseCase         `gorm:"column:use_case;not null;default:individual" json:"useCase"`
	Returnable  bool                  `gorm:"column:returnable;not null;default:false" json:"returnable"`
	MinOrder    int                   `gorm:"column:min_order;not null;default:1" json:"minOrder"`
	Badge       *string               `gorm:"column:badge" json:"badge,omitempty"`
	Tags        dbtypes.StringList    `gorm:"column:tags;type:text;not null;default:'[]'" json:"tags"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the primary key so the model works on backends without
// a server-side uuid default.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
