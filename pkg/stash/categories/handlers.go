package categories

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles category requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new categories handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name          string `json:"name" binding:"required,max=64"`
	Description   string `json:"description" binding:"max=500"`
	CoverImageURL string `json:"cover_image_url" binding:"omitempty,url"`
	SortOrder     int    `json:"sort_order" binding:"gte=0"`
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=64"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
	SortOrder     *int    `json:"sort_order" binding:"omitempty,gte=0"`
}

// CategoryResponse represents a category in list responses
type CategoryResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
	SortOrder     int    `json:"sort_order"`
	ItemCount     int64  `json:"item_count"`
}

// AddImageRequest represents the request to attach image metadata
type AddImageRequest struct {
	URL       string `json:"url" binding:"required,max=2048"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
	Width     int    `json:"width" binding:"gte=0"`
	Height    int    `json:"height" binding:"gte=0"`
}

// ReorderImagesRequest represents the request to reorder category images
type ReorderImagesRequest struct {
	OrderedIDs []uint `json:"ordered_ids" binding:"required,min=1"`
}

// List returns the user's categories with live item counts
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var categories []models.Category
	err := h.db.Where("owner_id = ?", userID).
		Order("sort_order ASC").Order("created_at DESC").
		Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		var count int64
		h.db.Model(&models.Item{}).Where("owner_id = ? AND category_id = ?", userID, cat.ID).Count(&count)
		resp[i] = CategoryResponse{
			ID:            cat.ID,
			Name:          cat.Name,
			Description:   cat.Description,
			CoverImageURL: cat.CoverImageURL,
			SortOrder:     cat.SortOrder,
			ItemCount:     count,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns a category with its images
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var category models.Category
	err = h.db.Where("id = ? AND owner_id = ?", categoryID, userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&category).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// Create creates a new category
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		OwnerID:       userID,
		Name:          req.Name,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		SortOrder:     req.SortOrder,
	}
	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update updates a category
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var category models.Category
	if err := h.db.Where("id = ? AND owner_id = ?", categoryID, userID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.CoverImageURL != nil {
		category.CoverImageURL = *req.CoverImageURL
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := h.db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete soft-deletes a category. Refused while live items still
// reference it.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var used int64
	err = h.db.Model(&models.Item{}).
		Where("owner_id = ? AND category_id = ?", userID, categoryID).
		Count(&used).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category usage"})
		return
	}
	if used > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete category that is still used by items"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", categoryID, userID).Delete(&models.Category{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// AddImage attaches image metadata to a category
func (h *Handler) AddImage(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var category models.Category
	if err := h.db.Select("id").Where("id = ? AND owner_id = ?", categoryID, userID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := models.CategoryImage{
		OwnerID:    userID,
		CategoryID: category.ID,
		URL:        req.URL,
		SortOrder:  req.SortOrder,
		Width:      req.Width,
		Height:     req.Height,
	}
	if err := h.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

// ReorderImages rewrites sort order for a category's images
func (h *Handler) ReorderImages(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var images []models.CategoryImage
	if err := h.db.Select("id").Where("owner_id = ? AND category_id = ?", userID, categoryID).Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}
	existing := make(map[uint]bool, len(images))
	for _, img := range images {
		existing[img.ID] = true
	}
	for _, id := range req.OrderedIDs {
		if !existing[id] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image id"})
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		for idx, id := range req.OrderedIDs {
			err := tx.Model(&models.CategoryImage{}).Where("id = ?", id).Update("sort_order", idx).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Images reordered"})
}

// RemoveImage soft-deletes category image metadata
func (h *Handler) RemoveImage(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", imageID, userID).Delete(&models.CategoryImage{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image removed"})
}

// RegisterRoutes registers category routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.GET("/categories/:id", h.Get)
	rg.PATCH("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
	rg.POST("/categories/:id/images", h.AddImage)
	rg.PUT("/categories/:id/images/order", h.ReorderImages)
	rg.DELETE("/categories/:id/images/:imageId", h.RemoveImage)
}
