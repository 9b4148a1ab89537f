package importexport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"github.com/rfallows/stash/pkg/stash/tags"
	"gorm.io/gorm"
)

// Handler handles inventory import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ExportItem represents one item in the export format. References are by
// name so an export can be replayed into another account.
type ExportItem struct {
	Name               string    `json:"name"`
	Category           string    `json:"category,omitempty"`
	InboundAt          time.Time `json:"inbound_at"`
	StatusValue        string    `json:"status_value,omitempty"`
	AcquireMethodValue string    `json:"acquire_method_value,omitempty"`
	Price              int64     `json:"price"`
	IsFavorite         bool      `json:"is_favorite"`
	Rating             int       `json:"rating"`
	Note               string    `json:"note,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
}

// ExportDocument is the top-level export payload
type ExportDocument struct {
	ExportedAt time.Time    `json:"exported_at"`
	Items      []ExportItem `json:"items"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Items []ExportItem `json:"items" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Export dumps the user's live items with category and tag names
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var items []models.Item
	err := h.db.Where("owner_id = ?", userID).
		Order("id ASC").
		Preload("Category").
		Preload("Tags").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	doc := ExportDocument{ExportedAt: time.Now(), Items: make([]ExportItem, len(items))}
	for i, item := range items {
		exp := ExportItem{
			Name:               item.Name,
			InboundAt:          item.InboundAt,
			StatusValue:        item.StatusValue,
			AcquireMethodValue: item.AcquireMethodValue,
			Price:              item.Price,
			IsFavorite:         item.IsFavorite,
			Rating:             item.Rating,
			Note:               item.Note,
		}
		if item.Category != nil {
			exp.Category = item.Category.Name
		}
		for _, a := range item.Tags {
			exp.Tags = append(exp.Tags, a.TagNameSnapshot)
		}
		doc.Items[i] = exp
	}

	c.JSON(http.StatusOK, doc)
}

// Import creates items from an export document. Categories and tags are
// created on demand by name. Items with an empty name or out-of-range
// fields are skipped, not fatal; parent relations are not part of the
// export format and are left unset.
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{}
	for i, in := range req.Items {
		if in.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: missing name", i))
			continue
		}
		if in.Rating < 0 || in.Rating > 5 || in.Price < 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: invalid rating or price", i))
			continue
		}

		err := h.db.Transaction(func(tx *gorm.DB) error {
			var categoryID *uint
			if in.Category != "" {
				id, err := h.getOrCreateCategory(tx, userID, in.Category)
				if err != nil {
					return err
				}
				categoryID = &id
			}

			inboundAt := in.InboundAt
			if inboundAt.IsZero() {
				inboundAt = time.Now()
			}

			item := models.Item{
				OwnerID:            userID,
				Name:               in.Name,
				CategoryID:         categoryID,
				InboundAt:          inboundAt,
				StatusValue:        in.StatusValue,
				AcquireMethodValue: in.AcquireMethodValue,
				Price:              in.Price,
				IsFavorite:         in.IsFavorite,
				Rating:             in.Rating,
				Note:               in.Note,
				TagNamesSnapshot:   []string{},
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			if len(in.Tags) == 0 {
				return nil
			}
			tagIDs := make([]uint, 0, len(in.Tags))
			for _, name := range in.Tags {
				if name == "" {
					continue
				}
				id, err := h.getOrCreateTag(tx, userID, name)
				if err != nil {
					return err
				}
				tagIDs = append(tagIDs, id)
			}
			names, err := tags.AttachTags(tx, userID, item.ID, tagIDs)
			if err != nil {
				return err
			}
			return tx.Model(&models.Item{}).
				Where("id = ?", item.ID).
				Update("tag_names_snapshot", names).Error
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) getOrCreateCategory(tx *gorm.DB, ownerID uint, name string) (uint, error) {
	var category models.Category
	err := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&category).Error
	if err == nil {
		return category.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	category = models.Category{OwnerID: ownerID, Name: name}
	if err := tx.Create(&category).Error; err != nil {
		return 0, err
	}
	return category.ID, nil
}

// getOrCreateTag resolves a tag name to a tag id, reviving a soft-deleted
// tag of the same name so the insert does not trip the (owner, name)
// unique index.
func (h *Handler) getOrCreateTag(tx *gorm.DB, ownerID uint, name string) (uint, error) {
	var tag models.Tag
	err := tx.Unscoped().Where("owner_id = ? AND name = ?", ownerID, name).First(&tag).Error
	switch {
	case err == nil && !tag.DeletedAt.Valid:
		return tag.ID, nil
	case err == nil:
		tag.UsageCount = 0
		tag.DeletedAt = gorm.DeletedAt{}
		if err := tx.Unscoped().Save(&tag).Error; err != nil {
			return 0, err
		}
		return tag.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		tag = models.Tag{OwnerID: ownerID, Name: name}
		if err := tx.Create(&tag).Error; err != nil {
			return 0, err
		}
		return tag.ID, nil
	default:
		return 0, err
	}
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
