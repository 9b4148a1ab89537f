package uploads

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/imaging"
)

// Handler handles image uploads, storing processed files on local disk
// under baseDir/<owner>/<year>/<month>/<name>.jpg.
type Handler struct {
	baseDir string
}

// NewHandler creates a new uploads handler rooted at baseDir
func NewHandler(baseDir string) *Handler {
	return &Handler{baseDir: baseDir}
}

// UploadResponse represents a stored upload
type UploadResponse struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Upload accepts one multipart image, normalizes it and writes it under
// the upload directory
// @Summary Upload an image
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (JPEG, PNG or WebP, max 5 MB)"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} map[string]string "Missing or invalid file"
// @Security BearerAuth
// @Router /uploads [post]
func (h *Handler) Upload(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	if file.Size > imaging.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	result, err := imaging.Process(src)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	relDir := filepath.Join(
		fmt.Sprintf("%d", userID),
		fmt.Sprintf("%04d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
	)
	absDir := filepath.Join(h.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	name := randomName() + ".jpg"
	if err := os.WriteFile(filepath.Join(absDir, name), result.Data, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{
		URL:    "/uploads/" + filepath.ToSlash(filepath.Join(relDir, name)),
		Width:  result.Width,
		Height: result.Height,
	})
}

func randomName() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fall back to a timestamp; collisions are survivable here.
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

// RegisterRoutes registers upload routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
}
