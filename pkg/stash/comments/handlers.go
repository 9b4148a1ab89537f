package comments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// repliesPreview caps how many replies come back inline with each
// top-level comment.
const repliesPreview = 3

// Handler handles comment requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new comments handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateCommentRequest represents the request to comment on an item
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ReplyRequest represents the request to reply within a comment thread
type ReplyRequest struct {
	ParentID         uint   `json:"parent_id" binding:"required"`
	ReplyToCommentID *uint  `json:"reply_to_comment_id"`
	Content          string `json:"content" binding:"required,max=2000"`
}

// ListQuery represents comment list pagination
type ListQuery struct {
	Cursor *uint `form:"cursor"`
	Limit  int   `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
}

// ListResponse is a page of top-level comments with reply previews
type ListResponse struct {
	Comments   []models.Comment `json:"comments"`
	NextCursor *uint            `json:"next_cursor"`
}

// ListByItem returns an item's top-level comments, newest first, each
// with a short reply preview
func (h *Handler) ListByItem(c *gin.Context) {
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

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := h.db.Where("owner_id = ? AND item_id = ? AND parent_id IS NULL", userID, itemID)
	if q.Cursor != nil {
		query = query.Where("id < ?", *q.Cursor)
	}

	var rows []models.Comment
	err = query.
		Order("id DESC").
		Limit(q.Limit + 1).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Limit(repliesPreview)
		}).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	var nextCursor *uint
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
		id := rows[len(rows)-1].ID
		nextCursor = &id
	}

	c.JSON(http.StatusOK, ListResponse{Comments: rows, NextCursor: nextCursor})
}

// Create adds a top-level comment to an item
func (h *Handler) Create(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		OwnerID:  userID,
		ItemID:   item.ID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Reply adds a reply to an existing comment thread. The parent must be a
// live comment on the same item.
func (h *Handler) Reply(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parent models.Comment
	err = h.db.Select("id").
		Where("id = ? AND owner_id = ? AND item_id = ?", req.ParentID, userID, itemID).
		First(&parent).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
		return
	}

	reply := models.Comment{
		OwnerID:          userID,
		ItemID:           uint(itemID),
		AuthorID:         userID,
		ParentID:         &parent.ID,
		ReplyToCommentID: req.ReplyToCommentID,
		Content:          req.Content,
	}
	if err := h.db.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// Remove soft-deletes a comment (idempotent)
func (h *Handler) Remove(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.db.Where("id = ? AND owner_id = ?", commentID, userID).Delete(&models.Comment{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment removed"})
}

// RegisterRoutes registers comment routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items/:id/comments", h.ListByItem)
	rg.POST("/items/:id/comments", h.Create)
	rg.POST("/items/:id/comments/reply", h.Reply)
	rg.DELETE("/comments/:id", h.Remove)
}
