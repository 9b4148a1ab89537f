package dictionaries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles dictionary requests. Dictionaries are system-wide value
// lists; reading is open to any user, writing is admin-only (route-level).
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new dictionaries handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UpsertDictionaryRequest represents the request to create or rename a
// dictionary
type UpsertDictionaryRequest struct {
	Code string `json:"code" binding:"required,max=64"`
	Name string `json:"name" binding:"required,max=64"`
}

// UpsertItemRequest represents the request to create or update a
// dictionary value
type UpsertItemRequest struct {
	DictionaryID uint   `json:"dictionary_id" binding:"required"`
	Value        string `json:"value" binding:"required,max=64"`
	Label        string `json:"label" binding:"required,max=64"`
	SortOrder    int    `json:"sort_order" binding:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

// SetItemActiveRequest represents the request to toggle a value
type SetItemActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// List returns all dictionaries with their active values
func (h *Handler) List(c *gin.Context) {
	var dicts []models.Dictionary
	err := h.db.
		Order("code ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("label ASC")
		}).
		Find(&dicts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dictionaries"})
		return
	}

	c.JSON(http.StatusOK, dicts)
}

// Upsert creates a dictionary or renames an existing one by code
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertDictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dict models.Dictionary
	err := h.db.Where("code = ?", req.Code).First(&dict).Error
	switch {
	case err == nil:
		dict.Name = req.Name
		if err := h.db.Save(&dict).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dictionary"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		dict = models.Dictionary{Code: req.Code, Name: req.Name}
		if err := h.db.Create(&dict).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dictionary"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dictionary"})
		return
	}

	c.JSON(http.StatusOK, dict)
}

// UpsertItem creates or updates a dictionary value by (dictionary, value).
// Upserting a soft-deleted value revives it.
func (h *Handler) UpsertItem(c *gin.Context) {
	var req UpsertItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dict models.Dictionary
	if err := h.db.Select("id").Where("id = ?", req.DictionaryID).First(&dict).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dictionary not found"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// Unscoped lookup so a previously removed value can be revived
	// instead of colliding with the dead row on the unique index.
	var item models.DictionaryItem
	err := h.db.Unscoped().
		Where("dictionary_id = ? AND value = ?", dict.ID, req.Value).
		First(&item).Error
	switch {
	case err == nil:
		item.Label = req.Label
		item.SortOrder = req.SortOrder
		item.IsActive = isActive
		item.DeletedAt = gorm.DeletedAt{}
		if err := h.db.Unscoped().Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dictionary item"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.DictionaryItem{
			DictionaryID: dict.ID,
			Value:        req.Value,
			Label:        req.Label,
			SortOrder:    req.SortOrder,
			IsActive:     isActive,
		}
		if err := h.db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dictionary item"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dictionary item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// SetItemActive enables or disables a dictionary value
func (h *Handler) SetItemActive(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dictionary item ID"})
		return
	}

	var req SetItemActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.DictionaryItem
	if err := h.db.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dictionary item not found"})
		return
	}

	item.IsActive = *req.IsActive
	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dictionary item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RegisterRoutes registers read-only dictionary routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dictionaries", h.List)
}

// RegisterAdminRoutes registers dictionary management routes
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/dictionaries", h.Upsert)
	rg.PUT("/dictionaries/items", h.UpsertItem)
	rg.PATCH("/dictionaries/items/:id/active", h.SetItemActive)
}
