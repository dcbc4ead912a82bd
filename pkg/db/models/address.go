package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a delivery destination owned by a single user. At most one
// address per user may be the default; the address service enforces this.
type Address struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Label     string    `gorm:"column:label" json:"label"`
	FullName  *string   `gorm:"column:full_name" json:"fullName,omitempty"`
	Street    string    `gorm:"column:street;type:text;not null" json:"street"`
	City      string    `gorm:"column:city;not null" json:"city"`
	State     string    `gorm:"column:state;not null" json:"state"`
	Pincode   string    `gorm:"column:pincode;not null" json:"pincode"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false" json:"isDefault"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (a *Address) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
