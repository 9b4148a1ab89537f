package models

import (
	"time"

	"gorm.io/gorm"
)

// Dictionary is a system-managed value list (item status, acquire method).
// Items reference dictionary values by their string code, not by id, so
// renames of labels never touch item rows.
type Dictionary struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"not null" json:"name"`

	Items []DictionaryItem `gorm:"foreignKey:DictionaryID" json:"items,omitempty"`
}

// DictionaryItem is one selectable value of a dictionary.
type DictionaryItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	DictionaryID uint           `gorm:"not null;index;uniqueIndex:idx_dict_items_dict_value" json:"dictionary_id"`
	Value        string         `gorm:"not null;uniqueIndex:idx_dict_items_dict_value" json:"value"`
	Label        string         `gorm:"not null" json:"label"`
	SortOrder    int            `gorm:"default:0" json:"sort_order"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
}
