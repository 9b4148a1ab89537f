package itemtemplates

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles template instance requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new item templates handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UpsertRequest represents the request to create or update an instance
type UpsertRequest struct {
	InstanceID            *uint              `json:"instance_id"`
	TemplateID            *uint              `json:"template_id"`
	TemplateGroupSnapshot string             `json:"template_group_snapshot" binding:"required,max=64"`
	TemplateNameSnapshot  string             `json:"template_name_snapshot" binding:"required,max=64"`
	SchemaSnapshot        models.FieldSchema `json:"schema_snapshot"`
	Values                map[string]any     `json:"values" binding:"required"`
}

// Upsert creates or updates a template instance on an item
// @Summary Upsert template instance
// @Description Attach a template instance to an item, or update one in place. Passing template_id re-pulls the live schema into the snapshot.
// @Tags item-templates
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body UpsertRequest true "Instance"
// @Success 200 {object} models.ItemTemplate
// @Failure 404 {object} map[string]string "Item or instance not found"
// @Security BearerAuth
// @Router /items/{id}/templates [post]
func (h *Handler) Upsert(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instance, err := UpsertInstance(h.db, userID, UpsertInput{
		ItemID:                uint(itemID),
		InstanceID:            req.InstanceID,
		TemplateID:            req.TemplateID,
		TemplateGroupSnapshot: req.TemplateGroupSnapshot,
		TemplateNameSnapshot:  req.TemplateNameSnapshot,
		SchemaSnapshot:        req.SchemaSnapshot,
		Values:                req.Values,
	})
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, instance)
}

// ListByItem returns an item's template instances
func (h *Handler) ListByItem(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	instances, err := ListByItem(h.db, userID, uint(itemID))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, instances)
}

// Remove soft-deletes a template instance (idempotent)
func (h *Handler) Remove(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	instanceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance ID"})
		return
	}

	if err := RemoveInstance(h.db, userID, uint(instanceID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove instance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Instance removed"})
}

// RegisterRoutes registers template instance routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items/:id/templates", h.ListByItem)
	rg.POST("/items/:id/templates", h.Upsert)
	rg.DELETE("/item-templates/:id", h.Remove)
}
