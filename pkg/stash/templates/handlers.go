package templates

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles template definition requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new templates handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTemplateRequest represents the request to create a template
type CreateTemplateRequest struct {
	TemplateGroup string             `json:"template_group" binding:"required,max=64"`
	TemplateName  string             `json:"template_name" binding:"required,max=64"`
	Schema        models.FieldSchema `json:"schema" binding:"required,min=1,dive"`
}

// UpdateTemplateRequest represents the request to update a template.
// Edits change the definition only; instances already attached to items
// keep their frozen snapshots.
type UpdateTemplateRequest struct {
	TemplateGroup *string            `json:"template_group" binding:"omitempty,min=1,max=64"`
	TemplateName  *string            `json:"template_name" binding:"omitempty,min=1,max=64"`
	Schema        models.FieldSchema `json:"schema" binding:"omitempty,min=1,dive"`
}

// List returns all of the user's templates, grouped
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var templates []models.Template
	err := h.db.Where("owner_id = ?", userID).
		Order("template_group ASC").Order("template_name ASC").
		Find(&templates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	c.JSON(http.StatusOK, templates)
}

// Get returns a single template
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	templateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var template models.Template
	if err := h.db.Where("id = ? AND owner_id = ?", templateID, userID).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, template)
}

// Create creates a new template
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := models.Template{
		OwnerID:       userID,
		TemplateGroup: req.TemplateGroup,
		TemplateName:  req.TemplateName,
		Schema:        req.Schema,
	}
	if err := h.db.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, template)
}

// Update updates a template definition
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	templateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	var template models.Template
	if err := h.db.Where("id = ? AND owner_id = ?", templateID, userID).First(&template).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TemplateGroup != nil {
		template.TemplateGroup = *req.TemplateGroup
	}
	if req.TemplateName != nil {
		template.TemplateName = *req.TemplateName
	}
	if req.Schema != nil {
		template.Schema = req.Schema
	}

	if err := h.db.Save(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}

	c.JSON(http.StatusOK, template)
}

// Delete soft-deletes a template. Instances keep their snapshots.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	templateID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", templateID, userID).Delete(&models.Template{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// RegisterRoutes registers template routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.List)
	rg.POST("/templates", h.Create)
	rg.GET("/templates/:id", h.Get)
	rg.PATCH("/templates/:id", h.Update)
	rg.DELETE("/templates/:id", h.Delete)
}
