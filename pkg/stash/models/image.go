package models

import (
	"time"

	"gorm.io/gorm"
)

// ItemImage is image metadata attached to an item. The bytes themselves
// live under the upload directory; URL points at them.
type ItemImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	ItemID    uint           `gorm:"not null;index" json:"item_id"`
	URL       string         `gorm:"not null" json:"url"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
}

// CategoryImage is image metadata attached to a category.
type CategoryImage struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID    uint           `gorm:"not null;index" json:"owner_id"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	URL        string         `gorm:"not null" json:"url"`
	SortOrder  int            `gorm:"default:0" json:"sort_order"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
}
