package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/admin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/categories"
	"github.com/rfallows/stash/pkg/stash/comments"
	"github.com/rfallows/stash/pkg/stash/database"
	"github.com/rfallows/stash/pkg/stash/dictionaries"
	"github.com/rfallows/stash/pkg/stash/importexport"
	"github.com/rfallows/stash/pkg/stash/items"
	"github.com/rfallows/stash/pkg/stash/itemtemplates"
	"github.com/rfallows/stash/pkg/stash/models"
	"github.com/rfallows/stash/pkg/stash/search"
	"github.com/rfallows/stash/pkg/stash/tags"
	"github.com/rfallows/stash/pkg/stash/templates"
	"github.com/rfallows/stash/pkg/stash/uploads"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/rfallows/stash/api/swagger"
)

// @title Stash API
// @version 1.0
// @description A personal inventory manager: items, categories, tags, attribute templates and accessory hierarchies.

// @contact.name Stash Support
// @contact.url https://github.com/rfallows/stash

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("STASH_DB_PATH")
	if dbPath == "" {
		dbPath = "stash.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Create default admin user if no admin exists
	if err := ensureAdminExists(); err != nil {
		log.Fatalf("Failed to ensure admin user exists: %v", err)
	}

	// Seed the system dictionaries (item status, acquire method)
	if err := seedDictionaries(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed dictionaries: %v", err)
	}

	uploadDir := os.Getenv("STASH_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Stored uploads
	r.Static("/uploads", uploadDir)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "stash",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		authed := api.Group("", auth.AuthMiddleware())

		// Items, tags, templates, categories, comments, search
		itemsHandler := items.NewHandler(database.GetDB())
		itemsHandler.RegisterRoutes(authed)

		tagsHandler := tags.NewHandler(database.GetDB())
		tagsHandler.RegisterRoutes(authed)

		templatesHandler := templates.NewHandler(database.GetDB())
		templatesHandler.RegisterRoutes(authed)

		itemTemplatesHandler := itemtemplates.NewHandler(database.GetDB())
		itemTemplatesHandler.RegisterRoutes(authed)

		categoriesHandler := categories.NewHandler(database.GetDB())
		categoriesHandler.RegisterRoutes(authed)

		commentsHandler := comments.NewHandler(database.GetDB())
		commentsHandler.RegisterRoutes(authed)

		searchHandler := search.NewHandler(database.GetDB())
		searchHandler.RegisterRoutes(authed)

		dictionariesHandler := dictionaries.NewHandler(database.GetDB())
		dictionariesHandler.RegisterRoutes(authed)

		importExportHandler := importexport.NewHandler(database.GetDB())
		importExportHandler.RegisterRoutes(authed)

		uploadsHandler := uploads.NewHandler(uploadDir)
		uploadsHandler.RegisterRoutes(authed)

		// Admin routes (admin role required)
		adminGroup := api.Group("/admin")
		adminGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
		adminHandler := admin.NewHandler(database.GetDB())
		adminHandler.RegisterRoutes(adminGroup)
		dictionariesHandler.RegisterAdminRoutes(adminGroup)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Stash server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminExists creates a default admin user if no admin exists in the
// database. Username and password come from the environment, with
// development defaults.
func ensureAdminExists() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	username := os.Getenv("STASH_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("STASH_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	adminUser := models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Printf("Created default admin user: %s", username)
	return nil
}

// seedDictionaries inserts the system value lists on first boot. Existing
// dictionaries and values are left untouched.
func seedDictionaries(db *gorm.DB) error {
	seeds := []struct {
		Code  string
		Name  string
		Items [][2]string
	}{
		{
			Code: "ITEM_STATUS",
			Name: "Item status",
			Items: [][2]string{
				{"IN_STOCK", "In stock"},
				{"BORROWED", "Lent out"},
				{"DAMAGED", "Damaged"},
				{"SOLD", "Sold"},
				{"LOST", "Lost"},
				{"REPAIRING", "Being repaired"},
				{"DONATED", "Donated"},
				{"SCRAPPED", "Scrapped"},
			},
		},
		{
			Code: "ACQUIRE_METHOD",
			Name: "Acquire method",
			Items: [][2]string{
				{"BUY", "Purchase"},
				{"GIFT", "Gift"},
				{"EXCHANGE", "Exchange"},
				{"HANDMADE", "Handmade"},
				{"RENT", "Rental"},
				{"INHERIT", "Inherited"},
				{"FOUND", "Found"},
				{"PRIZE", "Prize"},
			},
		},
	}

	for _, seed := range seeds {
		var dict models.Dictionary
		err := db.Where("code = ?", seed.Code).First(&dict).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		dict = models.Dictionary{Code: seed.Code, Name: seed.Name}
		if err := db.Create(&dict).Error; err != nil {
			return err
		}
		for i, pair := range seed.Items {
			item := models.DictionaryItem{
				DictionaryID: dict.ID,
				Value:        pair[0],
				Label:        pair[1],
				SortOrder:    i,
				IsActive:     true,
			}
			if err := db.Create(&item).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded dictionary %s with %d values", seed.Code, len(seed.Items))
	}

	return nil
}
