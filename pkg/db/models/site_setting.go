package models

import "time"

// SiteSetting is one row of the flat key/value table backing editable site
// content. Structured values (e.g. the team list) are JSON-encoded strings.
type SiteSetting struct {
	Key         string    `gorm:"column:key;primaryKey" json:"key"`
	Value       string    `gorm:"column:value;type:text;not null" json:"value"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
