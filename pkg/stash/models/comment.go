package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a note thread entry on an item. Top-level comments have no
// ParentID; replies point at their top-level parent, and optionally at the
// specific comment they answer within the thread.
type Comment struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID          uint           `gorm:"not null;index" json:"owner_id"`
	ItemID           uint           `gorm:"not null;index" json:"item_id"`
	AuthorID         uint           `gorm:"not null" json:"author_id"`
	ParentID         *uint          `gorm:"index" json:"parent_id"`
	ReplyToCommentID *uint          `json:"reply_to_comment_id"`
	Content          string         `gorm:"not null" json:"content"`

	Replies []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}
