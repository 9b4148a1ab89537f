package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a label a user can attach to items. Names are unique per
// owner. The unique index spans soft-deleted rows, so creating a tag under
// a removed tag's name revives the dead row rather than inserting a new one.
//
// UsageCount counts attachment events: it is incremented every time the tag
// appears in an attach or resync call, including re-asserting an already
// attached tag, and is never decremented on detach. It orders tag lists by
// rough popularity; it is not the number of items currently tagged.
type Tag struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    uint           `gorm:"not null;index;uniqueIndex:idx_tags_owner_name" json:"owner_id"`
	Name       string         `gorm:"not null;uniqueIndex:idx_tags_owner_name" json:"name"`
	Color      string         `json:"color"`
	UsageCount uint           `gorm:"default:0" json:"usage_count"`
}

// ItemTag is one item-tag attachment. TagNameSnapshot records the tag's
// name at attachment time so an item's history survives tag renames.
// At most one live row should exist per (item, tag) pair after a resync.
type ItemTag struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID         uint           `gorm:"not null;index" json:"owner_id"`
	ItemID          uint           `gorm:"not null;index" json:"item_id"`
	TagID           uint           `gorm:"not null;index" json:"tag_id"`
	TagNameSnapshot string         `gorm:"not null" json:"tag_name_snapshot"`

	Tag Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
