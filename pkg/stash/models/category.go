package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups items for browsing (e.g. "Appliances", "Books").
type Category struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	CoverImageURL string         `json:"cover_image_url"`
	SortOrder     int            `gorm:"default:0" json:"sort_order"`

	Items  []Item          `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
	Images []CategoryImage `gorm:"foreignKey:CategoryID" json:"images,omitempty"`
}
