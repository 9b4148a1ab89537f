package tags

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=32"`
	Color string `json:"color" binding:"max=32"`
}

// UpdateTagRequest represents the request to update a tag
type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=32"`
	Color *string `json:"color" binding:"omitempty,max=32"`
}

// SetItemTagsRequest represents the request to replace an item's tag set
type SetItemTagsRequest struct {
	TagIDs []uint `json:"tag_ids" binding:"required"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	UsageCount uint   `json:"usage_count"`
}

// ItemTagResponse represents one item-tag attachment in API responses.
// Name is the snapshot taken at attachment time, not the live tag name.
type ItemTagResponse struct {
	ID    uint   `json:"id"`
	TagID uint   `json:"tag_id"`
	Name  string `json:"name"`
}

func tagToResponse(t models.Tag) TagResponse {
	return TagResponse{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		UsageCount: t.UsageCount,
	}
}

// List returns all of the user's tags, most used first
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var tags []models.Tag
	err := h.db.Where("owner_id = ?", userID).
		Order("usage_count DESC").Order("name ASC").
		Find(&tags).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagToResponse(t)
	}
	c.JSON(http.StatusOK, resp)
}

// Create creates a new tag
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Unscoped lookup so a previously removed tag's name can be reused:
	// the unique index on (owner, name) spans dead rows, so the row is
	// revived instead of colliding with it.
	var tag models.Tag
	err := h.db.Unscoped().Where("owner_id = ? AND name = ?", userID, req.Name).First(&tag).Error
	switch {
	case err == nil && !tag.DeletedAt.Valid:
		c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
		return
	case err == nil:
		tag.Color = req.Color
		tag.UsageCount = 0
		tag.DeletedAt = gorm.DeletedAt{}
		if err := h.db.Unscoped().Save(&tag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		tag = models.Tag{
			OwnerID: userID,
			Name:    req.Name,
			Color:   req.Color,
		}
		if err := h.db.Create(&tag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tagToResponse(tag))
}

// Update renames or recolors a tag. Snapshots taken by earlier attachments
// are left alone.
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var tag models.Tag
	if err := h.db.Where("id = ? AND owner_id = ?", tagID, userID).First(&tag).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil && *req.Name != tag.Name {
		// Unscoped: a dead row holding the name would still trip the
		// unique index, so it counts as a conflict too.
		var existing models.Tag
		if err := h.db.Unscoped().Where("owner_id = ? AND name = ?", userID, *req.Name).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
			return
		}
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	if err := h.db.Save(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, tagToResponse(tag))
}

// Delete soft-deletes a tag
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", tagID, userID).Delete(&models.Tag{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}

// GetItemTags returns the live attachments of an item, snapshot names
// included
func (h *Handler) GetItemTags(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := h.db.Select("id").Where("id = ? AND owner_id = ?", itemID, userID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var assocs []models.ItemTag
	err = h.db.Where("owner_id = ? AND item_id = ?", userID, itemID).
		Order("id ASC").Find(&assocs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item tags"})
		return
	}

	resp := make([]ItemTagResponse, len(assocs))
	for i, a := range assocs {
		resp[i] = ItemTagResponse{ID: a.ID, TagID: a.TagID, Name: a.TagNameSnapshot}
	}
	c.JSON(http.StatusOK, resp)
}

// SetItemTags replaces the tag set of an item (full resync)
// @Summary Set item tags
// @Description Replace an item's tag set atomically, refreshing name snapshots
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body SetItemTagsRequest true "Tag IDs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid tag reference"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id}/tags [put]
func (h *Handler) SetItemTags(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req SetItemTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := SetItemTags(h.db, userID, uint(itemID), req.TagIDs); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tags updated"})
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.POST("/tags", h.Create)
	rg.PATCH("/tags/:id", h.Update)
	rg.DELETE("/tags/:id", h.Delete)

	// Item tag operations
	rg.GET("/items/:id/tags", h.GetItemTags)
	rg.PUT("/items/:id/tags", h.SetItemTags)
}
