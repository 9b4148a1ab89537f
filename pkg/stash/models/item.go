package models

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a physical item in a user's inventory.
//
// ParentID is a nullable self-reference: an item with a parent is an
// "accessory" of that parent. The tree invariants (same owner, no
// self-parenting, no cycles) are enforced by the items package before any
// write, never by the database.
//
// TagNamesSnapshot is a denormalized copy of the names of the item's
// current tags, refreshed only when the tag set itself is rewritten. List
// views render it without joining through item_tags, and it intentionally
// goes stale when a tag is renamed afterwards.
type Item struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID            uint           `gorm:"not null;index" json:"owner_id"`
	Name               string         `gorm:"not null" json:"name"`
	CategoryID         *uint          `gorm:"index" json:"category_id"`
	ParentID           *uint          `gorm:"index" json:"parent_id"`
	InboundAt          time.Time      `json:"inbound_at"`
	StatusValue        string         `json:"status_value"`
	AcquireMethodValue string         `json:"acquire_method_value"`
	Price              int64          `gorm:"default:0" json:"price"` // minor currency unit, never negative
	IsFavorite         bool           `gorm:"default:false" json:"is_favorite"`
	Rating             int            `gorm:"default:0" json:"rating"` // 0-5
	Note               string         `json:"note"`
	CoverImageID       *uint          `json:"cover_image_id"`
	TagNamesSnapshot   []string       `gorm:"serializer:json" json:"tag_names_snapshot"`

	// Relationships
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Parent      *Item          `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Accessories []Item         `gorm:"foreignKey:ParentID" json:"accessories,omitempty"`
	CoverImage  *ItemImage     `gorm:"foreignKey:CoverImageID" json:"cover_image,omitempty"`
	Images      []ItemImage    `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	Tags        []ItemTag      `gorm:"foreignKey:ItemID" json:"tags,omitempty"`
	Templates   []ItemTemplate `gorm:"foreignKey:ItemID" json:"templates,omitempty"`
}
