package models

import (
	"time"

	"gorm.io/gorm"
)

// Field types allowed in a template schema.
const (
	FieldTypeText    = "text"
	FieldTypeNumber  = "number"
	FieldTypeSelect  = "select"
	FieldTypeDate    = "date"
	FieldTypeBoolean = "boolean"
)

// TemplateField is one field definition in a template schema.
// Options is only meaningful for select fields.
type TemplateField struct {
	Key      string   `json:"key" binding:"required,max=64"`
	Label    string   `json:"label" binding:"required,max=64"`
	Type     string   `json:"type" binding:"required,oneof=text number select date boolean"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// FieldSchema is the ordered field list of a template, stored as JSON.
type FieldSchema []TemplateField

// Template is a reusable attribute-set definition (e.g. "Electronics /
// Camera" with brand/model/sensor fields). Instances attached to items
// snapshot the schema rather than referencing it, so templates can evolve
// or be deleted without rewriting history.
type Template struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	TemplateGroup string         `gorm:"not null" json:"template_group"`
	TemplateName  string         `gorm:"not null" json:"template_name"`
	Schema        FieldSchema    `gorm:"serializer:json" json:"schema"`
}
