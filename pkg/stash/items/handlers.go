package items

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"github.com/rfallows/stash/pkg/stash/tags"
	"gorm.io/gorm"
)

// Handler handles item-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new items handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateItemRequest represents the request to create an item
type CreateItemRequest struct {
	Name               string     `json:"name" binding:"required,max=128"`
	CategoryID         *uint      `json:"category_id"`
	ParentID           ParentRef  `json:"parent_id"`
	InboundAt          *time.Time `json:"inbound_at"`
	StatusValue        string     `json:"status_value" binding:"max=64"`
	AcquireMethodValue string     `json:"acquire_method_value" binding:"max=64"`
	Price              int64      `json:"price" binding:"gte=0"`
	IsFavorite         bool       `json:"is_favorite"`
	Rating             int        `json:"rating" binding:"gte=0,lte=5"`
	Note               string     `json:"note" binding:"max=2000"`
	TagIDs             []uint     `json:"tag_ids"`
}

// UpdateItemRequest represents the request to update an item. All fields
// are optional; parent_id distinguishes absent, null and set.
type UpdateItemRequest struct {
	Name               *string    `json:"name" binding:"omitempty,min=1,max=128"`
	CategoryID         *uint      `json:"category_id"`
	ParentID           ParentRef  `json:"parent_id"`
	InboundAt          *time.Time `json:"inbound_at"`
	StatusValue        *string    `json:"status_value" binding:"omitempty,max=64"`
	AcquireMethodValue *string    `json:"acquire_method_value" binding:"omitempty,max=64"`
	Price              *int64     `json:"price" binding:"omitempty,gte=0"`
	IsFavorite         *bool      `json:"is_favorite"`
	Rating             *int       `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Note               *string    `json:"note" binding:"omitempty,max=2000"`
}

// SetParentRequest represents the request to reparent an item.
// A null parent_id detaches the item.
type SetParentRequest struct {
	ParentID *uint `json:"parent_id"`
}

// ListItemsQuery represents list filters and pagination
type ListItemsQuery struct {
	Cursor      *uint   `form:"cursor"`
	Limit       int     `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
	Q           string  `form:"q" binding:"max=100"`
	ExcludeID   *uint   `form:"exclude_id"`
	CategoryID  *uint   `form:"category_id"`
	StatusValue string  `form:"status_value"`
	IsFavorite  *bool   `form:"is_favorite"`
	MinRating   *int    `form:"min_rating" binding:"omitempty,min=0,max=5"`
	PriceMin    *int64  `form:"price_min" binding:"omitempty,gte=0"`
	PriceMax    *int64  `form:"price_max" binding:"omitempty,gte=0"`
	InboundFrom *string `form:"inbound_from"`
	InboundTo   *string `form:"inbound_to"`
	TagID       *uint   `form:"tag_id"`
	OrderBy     string  `form:"order_by,default=updated_at" binding:"omitempty,oneof=updated_at inbound_at price rating"`
	OrderDir    string  `form:"order_dir,default=desc" binding:"omitempty,oneof=asc desc"`
}

// ItemSummary represents an item in list responses
type ItemSummary struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	CategoryID       *uint             `json:"category_id"`
	ParentID         *uint             `json:"parent_id"`
	InboundAt        time.Time         `json:"inbound_at"`
	StatusValue      string            `json:"status_value"`
	Price            int64             `json:"price"`
	IsFavorite       bool              `json:"is_favorite"`
	Rating           int               `json:"rating"`
	UpdatedAt        time.Time         `json:"updated_at"`
	TagNamesSnapshot []string          `json:"tag_names_snapshot"`
	CoverImage       *models.ItemImage `json:"cover_image,omitempty"`
	Category         *CategorySummary  `json:"category,omitempty"`
}

// CategorySummary is the category slice embedded in item responses
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListItemsResponse is a page of items plus the cursor for the next page
type ListItemsResponse struct {
	Items      []ItemSummary `json:"items"`
	NextCursor *uint         `json:"next_cursor"`
}

func itemToSummary(item models.Item) ItemSummary {
	s := ItemSummary{
		ID:               item.ID,
		Name:             item.Name,
		CategoryID:       item.CategoryID,
		ParentID:         item.ParentID,
		InboundAt:        item.InboundAt,
		StatusValue:      item.StatusValue,
		Price:            item.Price,
		IsFavorite:       item.IsFavorite,
		Rating:           item.Rating,
		UpdatedAt:        item.UpdatedAt,
		TagNamesSnapshot: item.TagNamesSnapshot,
		CoverImage:       item.CoverImage,
	}
	if s.TagNamesSnapshot == nil {
		s.TagNamesSnapshot = []string{}
	}
	if item.Category != nil {
		s.Category = &CategorySummary{ID: item.Category.ID, Name: item.Category.Name}
	}
	return s
}

func (h *Handler) checkCategory(ownerID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var category models.Category
	err := h.db.Select("id").Where("id = ? AND owner_id = ?", *categoryID, ownerID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid category id", apperr.ErrInvalidReference)
		}
		return err
	}
	return nil
}

// orderColumns whitelists sortable fields; the map keys double as the
// allowed order_by query values.
var orderColumns = map[string]string{
	"updated_at": "updated_at",
	"inbound_at": "inbound_at",
	"price":      "price",
	"rating":     "rating",
}

func cursorValue(item models.Item, orderBy string) interface{} {
	switch orderBy {
	case "inbound_at":
		return item.InboundAt
	case "price":
		return item.Price
	case "rating":
		return item.Rating
	default:
		return item.UpdatedAt
	}
}

// List returns a filtered, cursor-paginated page of the user's items
// @Summary List items
// @Produce json
// @Success 200 {object} ListItemsResponse
// @Security BearerAuth
// @Router /items [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var q ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := h.db.Model(&models.Item{}).Where("items.owner_id = ?", userID)

	if q.ExcludeID != nil {
		query = query.Where("items.id <> ?", *q.ExcludeID)
	}
	if q.Q != "" {
		query = query.Where("items.name LIKE ?", "%"+q.Q+"%")
	}
	if q.CategoryID != nil {
		query = query.Where("items.category_id = ?", *q.CategoryID)
	}
	if q.StatusValue != "" {
		query = query.Where("items.status_value = ?", q.StatusValue)
	}
	if q.IsFavorite != nil {
		query = query.Where("items.is_favorite = ?", *q.IsFavorite)
	}
	if q.MinRating != nil {
		query = query.Where("items.rating >= ?", *q.MinRating)
	}
	if q.PriceMin != nil {
		query = query.Where("items.price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		query = query.Where("items.price <= ?", *q.PriceMax)
	}
	if q.InboundFrom != nil {
		from, err := time.Parse("2006-01-02", *q.InboundFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inbound_from date"})
			return
		}
		query = query.Where("items.inbound_at >= ?", from)
	}
	if q.InboundTo != nil {
		to, err := time.Parse("2006-01-02", *q.InboundTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inbound_to date"})
			return
		}
		query = query.Where("items.inbound_at <= ?", to)
	}
	if q.TagID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM item_tags it WHERE it.item_id = items.id AND it.tag_id = ? AND it.deleted_at IS NULL)",
			*q.TagID)
	}

	col := orderColumns[q.OrderBy]
	desc := q.OrderDir != "asc"
	op := ">"
	dir := "ASC"
	if desc {
		op = "<"
		dir = "DESC"
	}

	// Cursor pagination on the (order field, id) tuple. The cursor is the
	// id of the last item of the previous page.
	if q.Cursor != nil {
		var cur models.Item
		err := h.db.Where("id = ? AND owner_id = ?", *q.Cursor, userID).First(&cur).Error
		if err == nil {
			val := cursorValue(cur, q.OrderBy)
			query = query.Where(
				fmt.Sprintf("items.%s %s ? OR (items.%s = ? AND items.id %s ?)", col, op, col, op),
				val, val, cur.ID)
		}
	}

	var rows []models.Item
	err := query.
		Order(fmt.Sprintf("items.%s %s", col, dir)).
		Order("items.id " + dir).
		Limit(q.Limit + 1).
		Preload("CoverImage").
		Preload("Category").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	var nextCursor *uint
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
		id := rows[len(rows)-1].ID
		nextCursor = &id
	}

	page := make([]ItemSummary, len(rows))
	for i, item := range rows {
		page[i] = itemToSummary(item)
	}

	c.JSON(http.StatusOK, ListItemsResponse{Items: page, NextCursor: nextCursor})
}

// Create creates a new item
// @Summary Create item
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item"
// @Success 201 {object} models.Item
// @Failure 400 {object} map[string]string "Invalid reference or relation"
// @Security BearerAuth
// @Router /items [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.checkCategory(userID, req.CategoryID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	parentID, _, err := ResolveParent(h.db, userID, 0, req.ParentID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	inboundAt := time.Now()
	if req.InboundAt != nil {
		inboundAt = *req.InboundAt
	}

	item := models.Item{
		OwnerID:            userID,
		Name:               req.Name,
		CategoryID:         req.CategoryID,
		ParentID:           parentID,
		InboundAt:          inboundAt,
		StatusValue:        req.StatusValue,
		AcquireMethodValue: req.AcquireMethodValue,
		Price:              req.Price,
		IsFavorite:         req.IsFavorite,
		Rating:             req.Rating,
		Note:               req.Note,
		TagNamesSnapshot:   []string{},
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if len(req.TagIDs) > 0 {
			names, err := tags.AttachTags(tx, userID, item.ID, req.TagIDs)
			if err != nil {
				return err
			}
			item.TagNamesSnapshot = names
			return tx.Model(&models.Item{}).
				Where("id = ?", item.ID).
				Update("tag_names_snapshot", names).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get returns an item with its images, tags, template instances, parent
// summary and accessories
// @Summary Get item
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.Item
	err = h.db.Where("id = ? AND owner_id = ?", itemID, userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("CoverImage").
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Tags.Tag").
		Preload("Templates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Parent").
		Preload("Parent.CoverImage").
		Preload("Accessories", func(db *gorm.DB) *gorm.DB { return db.Order("updated_at DESC") }).
		Preload("Accessories.CoverImage").
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Accessories returns the items whose parent is this item
func (h *Handler) Accessories(c *gin.Context) {
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

	var accessories []models.Item
	err = h.db.Where("owner_id = ? AND parent_id = ?", userID, itemID).
		Order("updated_at DESC").
		Preload("CoverImage").
		Preload("Category").
		Find(&accessories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accessories"})
		return
	}

	resp := make([]ItemSummary, len(accessories))
	for i, a := range accessories {
		resp[i] = itemToSummary(a)
	}
	c.JSON(http.StatusOK, resp)
}

// Update partially updates an item
// @Summary Update item
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} models.Item
// @Failure 400 {object} map[string]string "Invalid reference or relation"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := h.db.Where("id = ? AND owner_id = ?", itemID, userID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		if err := h.checkCategory(userID, req.CategoryID); err != nil {
			c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
	}

	parentID, applyParent, err := ResolveParent(h.db, userID, item.ID, req.ParentID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if applyParent {
		updates["parent_id"] = parentID
	}
	if req.InboundAt != nil {
		updates["inbound_at"] = *req.InboundAt
	}
	if req.StatusValue != nil {
		updates["status_value"] = *req.StatusValue
	}
	if req.AcquireMethodValue != nil {
		updates["acquire_method_value"] = *req.AcquireMethodValue
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsFavorite != nil {
		updates["is_favorite"] = *req.IsFavorite
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) > 0 {
		if err := h.db.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
			return
		}
	}

	c.JSON(http.StatusOK, item)
}

// SetParent assigns or clears an item's parent
// @Summary Set item parent
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body SetParentRequest true "Parent (null detaches)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid reference or relation"
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{id}/parent [put]
func (h *Handler) SetParent(c *gin.Context) {
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

	var req SetParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parentID, _, err := ResolveParent(h.db, userID, item.ID, ParentRef{Set: true, ID: req.ParentID})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if err := h.db.Model(&models.Item{}).Where("id = ?", item.ID).Update("parent_id", parentID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set parent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parent updated"})
}

// Delete soft-deletes an item
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", itemID, userID).Delete(&models.Item{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// AddImageRequest represents the request to attach image metadata
type AddImageRequest struct {
	URL        string `json:"url" binding:"required,max=2048"`
	SortOrder  int    `json:"sort_order" binding:"gte=0"`
	Width      int    `json:"width" binding:"gte=0"`
	Height     int    `json:"height" binding:"gte=0"`
	SetAsCover bool   `json:"set_as_cover"`
}

// ReorderImagesRequest represents the request to reorder an item's images
type ReorderImagesRequest struct {
	OrderedIDs []uint `json:"ordered_ids" binding:"required,min=1"`
}

// SetCoverRequest represents the request to set or clear the cover image
type SetCoverRequest struct {
	ImageID *uint `json:"image_id"`
}

// AddImage attaches image metadata to an item
func (h *Handler) AddImage(c *gin.Context) {
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

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := models.ItemImage{
		OwnerID:   userID,
		ItemID:    item.ID,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		Width:     req.Width,
		Height:    req.Height,
	}
	if err := h.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add image"})
		return
	}

	if req.SetAsCover {
		if err := h.db.Model(&models.Item{}).Where("id = ?", item.ID).Update("cover_image_id", image.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set cover"})
			return
		}
	}

	c.JSON(http.StatusCreated, image)
}

// ReorderImages rewrites sort order for an item's images
func (h *Handler) ReorderImages(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var images []models.ItemImage
	if err := h.db.Select("id").Where("owner_id = ? AND item_id = ?", userID, itemID).Find(&images).Error; err != nil {
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
			err := tx.Model(&models.ItemImage{}).Where("id = ?", id).Update("sort_order", idx).Error
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

// RemoveImage soft-deletes image metadata
func (h *Handler) RemoveImage(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", imageID, userID).Delete(&models.ItemImage{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image removed"})
}

// SetCover sets or clears the item's cover image
func (h *Handler) SetCover(c *gin.Context) {
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

	var req SetCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ImageID != nil {
		var image models.ItemImage
		err := h.db.Select("id").
			Where("id = ? AND owner_id = ? AND item_id = ?", *req.ImageID, userID, item.ID).
			First(&image).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
			return
		}
	}

	if err := h.db.Model(&models.Item{}).Where("id = ?", item.ID).Update("cover_image_id", req.ImageID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set cover"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cover updated"})
}

// RegisterRoutes registers item routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", h.List)
	rg.POST("/items", h.Create)
	rg.GET("/items/:id", h.Get)
	rg.PATCH("/items/:id", h.Update)
	rg.DELETE("/items/:id", h.Delete)
	rg.PUT("/items/:id/parent", h.SetParent)
	rg.GET("/items/:id/accessories", h.Accessories)
	rg.POST("/items/:id/images", h.AddImage)
	rg.PUT("/items/:id/images/order", h.ReorderImages)
	rg.DELETE("/items/:id/images/:imageId", h.RemoveImage)
	rg.PUT("/items/:id/cover", h.SetCover)
}
