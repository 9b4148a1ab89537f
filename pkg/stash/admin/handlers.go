package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// Handler handles admin requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// UserResponse represents user data in admin responses
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	ItemCount int64  `json:"item_count"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=200"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// SetActiveRequest represents the request to enable or disable a user
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ResetPasswordRequest represents the request to reset a user's password
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=200"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	TotalItems         int64 `json:"total_items"`
	TotalTags          int64 `json:"total_tags"`
	TotalCategories    int64 `json:"total_categories"`
	TotalTemplates     int64 `json:"total_templates"`
	TotalItemTemplates int64 `json:"total_item_templates"`
	AdminUsers         int64 `json:"admin_users"`
	FavoriteItems      int64 `json:"favorite_items"`
}

// ListUsers returns all users
func (h *Handler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		var itemCount int64
		h.db.Model(&models.Item{}).Where("owner_id = ?", u.ID).Count(&itemCount)
		resp[i] = UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      string(u.Role),
			Active:    u.Active,
			CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
			ItemCount: itemCount,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CreateUser creates a new user account
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	role := models.RoleUser
	if req.Role == "admin" {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         role,
		Active:       true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
}

// SetUserActive enables or disables a user. Admins cannot disable
// themselves.
func (h *Handler) SetUserActive(c *gin.Context) {
	adminID, _ := auth.GetUserID(c)
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if uint(userID) == adminID && !*req.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot disable yourself"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Active = *req.Active
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "active": user.Active})
}

// ResetPassword sets a new password for a user
func (h *Handler) ResetPassword(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user.PasswordHash = hashedPassword
	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

// Stats returns system-wide counts
func (h *Handler) Stats(c *gin.Context) {
	var stats StatsResponse
	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Model(&models.Item{}).Count(&stats.TotalItems)
	h.db.Model(&models.Tag{}).Count(&stats.TotalTags)
	h.db.Model(&models.Category{}).Count(&stats.TotalCategories)
	h.db.Model(&models.Template{}).Count(&stats.TotalTemplates)
	h.db.Model(&models.ItemTemplate{}).Count(&stats.TotalItemTemplates)
	h.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.AdminUsers)
	h.db.Model(&models.Item{}).Where("is_favorite = ?", true).Count(&stats.FavoriteItems)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.POST("/users", h.CreateUser)
	rg.PATCH("/users/:id/active", h.SetUserActive)
	rg.POST("/users/:id/reset-password", h.ResetPassword)
	rg.GET("/stats", h.Stats)
}
