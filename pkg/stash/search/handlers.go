package search

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// tagHitLimit caps how many matching tags feed the tag-join pass.
const tagHitLimit = 10

// Handler handles search requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new search handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// SearchQuery represents the search parameters
type SearchQuery struct {
	Q     string `form:"q" binding:"required,max=100"`
	Limit int    `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
}

// Result represents one search hit
type Result struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	CategoryName string            `json:"category_name,omitempty"`
	CoverImage   *models.ItemImage `json:"cover_image,omitempty"`
}

// Items searches the user's items by name, note and category name, plus a
// best-effort pass over tag names joined through live attachments.
// Results are merged by item id and capped at the limit.
func (h *Handler) Items(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pattern := "%" + q.Q + "%"

	var direct []models.Item
	err := h.db.Model(&models.Item{}).
		Joins("LEFT JOIN categories ON categories.id = items.category_id AND categories.deleted_at IS NULL").
		Where("items.owner_id = ? AND items.deleted_at IS NULL", userID).
		Where("items.name LIKE ? OR items.note LIKE ? OR categories.name LIKE ?", pattern, pattern, pattern).
		Order("items.updated_at DESC").
		Limit(q.Limit).
		Preload("CoverImage").
		Preload("Category").
		Find(&direct).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	var tagIDs []uint
	err = h.db.Model(&models.Tag{}).
		Where("owner_id = ? AND name LIKE ?", userID, pattern).
		Limit(tagHitLimit).
		Pluck("id", &tagIDs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	var tagged []models.Item
	if len(tagIDs) > 0 {
		err = h.db.Model(&models.Item{}).
			Where("items.owner_id = ?", userID).
			Where("EXISTS (SELECT 1 FROM item_tags it WHERE it.item_id = items.id AND it.tag_id IN ? AND it.deleted_at IS NULL)", tagIDs).
			Order("items.updated_at DESC").
			Limit(q.Limit).
			Preload("CoverImage").
			Preload("Category").
			Find(&tagged).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
	}

	seen := make(map[uint]bool)
	results := make([]Result, 0, len(direct)+len(tagged))
	for _, item := range append(direct, tagged...) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		r := Result{ID: item.ID, Name: item.Name, CoverImage: item.CoverImage}
		if item.Category != nil {
			r.CategoryName = item.Category.Name
		}
		results = append(results, r)
		if len(results) == q.Limit {
			break
		}
	}

	c.JSON(http.StatusOK, results)
}

// RegisterRoutes registers search routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Items)
}
