package models

import (
	"time"

	"gorm.io/gorm"
)

// ItemTemplate is one instantiation of a template on an item.
//
// The group/name/schema snapshots are frozen copies taken when the instance
// is written. They are never refreshed implicitly: editing or deleting the
// source Template leaves every existing instance untouched, and only an
// explicit upsert carrying the template id re-pulls the live schema.
// Values maps field key to the current value; its shape is interpreted
// against SchemaSnapshot by the presentation layer.
type ItemTemplate struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID               uint           `gorm:"not null;index" json:"owner_id"`
	ItemID                uint           `gorm:"not null;index" json:"item_id"`
	TemplateID            *uint          `gorm:"index" json:"template_id"`
	TemplateGroupSnapshot string         `gorm:"not null" json:"template_group_snapshot"`
	TemplateNameSnapshot  string         `gorm:"not null" json:"template_name_snapshot"`
	SchemaSnapshot        FieldSchema    `gorm:"serializer:json" json:"schema_snapshot"`
	Values                map[string]any `gorm:"serializer:json" json:"values"`
}
