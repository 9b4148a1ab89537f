package items

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/auth"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Active:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestItem(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Item {
	item := models.Item{OwnerID: ownerID, Name: name}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(auth.AuthMiddleware())
	handler.RegisterRoutes(api)

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Username, string(user.Role))
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path string, body interface{}, user models.User) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	resp := doJSON(router, "POST", "/api/items", CreateItemRequest{
		Name:        "Laptop",
		StatusValue: "IN_STOCK",
		Price:       150000,
	}, user)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var item models.Item
	json.Unmarshal(resp.Body.Bytes(), &item)
	if item.Name != "Laptop" || item.OwnerID != user.ID {
		t.Errorf("Unexpected item: %+v", item)
	}
	if item.TagNamesSnapshot == nil || len(item.TagNamesSnapshot) != 0 {
		t.Errorf("Expected empty tag snapshot, got %v", item.TagNamesSnapshot)
	}
}

func TestCreateItemWithTags(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	tag1 := models.Tag{OwnerID: user.ID, Name: "electronics"}
	tag2 := models.Tag{OwnerID: user.ID, Name: "work"}
	db.Create(&tag1)
	db.Create(&tag2)

	resp := doJSON(router, "POST", "/api/items", CreateItemRequest{
		Name:   "Laptop",
		TagIDs: []uint{tag1.ID, tag2.ID},
	}, user)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var item models.Item
	json.Unmarshal(resp.Body.Bytes(), &item)
	if len(item.TagNamesSnapshot) != 2 {
		t.Errorf("Expected 2 snapshot names, got %v", item.TagNamesSnapshot)
	}

	var assocCount int64
	db.Model(&models.ItemTag{}).Where("item_id = ?", item.ID).Count(&assocCount)
	if assocCount != 2 {
		t.Errorf("Expected 2 associations, got %d", assocCount)
	}

	var reloaded models.Tag
	db.First(&reloaded, tag1.ID)
	if reloaded.UsageCount != 1 {
		t.Errorf("Expected usage count 1, got %d", reloaded.UsageCount)
	}
}

func TestCreateItemBadTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	tag := models.Tag{OwnerID: user.ID, Name: "real"}
	db.Create(&tag)

	resp := doJSON(router, "POST", "/api/items", CreateItemRequest{
		Name:   "Laptop",
		TagIDs: []uint{tag.ID, 9999},
	}, user)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	// The whole create rolls back
	var count int64
	db.Model(&models.Item{}).Where("owner_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected no items after failed create, got %d", count)
	}
}

func TestCreateItemBadCategory(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	badID := uint(123)
	resp := doJSON(router, "POST", "/api/items", CreateItemRequest{
		Name:       "Laptop",
		CategoryID: &badID,
	}, user)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	resp := doJSON(router, "GET", "/api/items/9999", nil, user)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}

func TestGetItemOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	item := createTestItem(t, db, owner.ID, "Laptop")

	resp := doJSON(router, "GET", fmt.Sprintf("/api/items/%d", item.ID), nil, other)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another owner, got %d", resp.Code)
	}
}

func TestGetDeletedItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	db.Delete(&item)

	resp := doJSON(router, "GET", fmt.Sprintf("/api/items/%d", item.ID), nil, user)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for deleted item, got %d", resp.Code)
	}
}

func TestSetParentAndAccessories(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	laptop := createTestItem(t, db, user.ID, "Laptop")
	charger := createTestItem(t, db, user.ID, "Charger")

	resp := doJSON(router, "PUT", fmt.Sprintf("/api/items/%d/parent", charger.ID),
		SetParentRequest{ParentID: &laptop.ID}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, "GET", fmt.Sprintf("/api/items/%d/accessories", laptop.ID), nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var accessories []ItemSummary
	json.Unmarshal(resp.Body.Bytes(), &accessories)
	if len(accessories) != 1 || accessories[0].ID != charger.ID {
		t.Errorf("Expected charger as sole accessory, got %+v", accessories)
	}
}

func TestSetParentSelf(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")

	resp := doJSON(router, "PUT", fmt.Sprintf("/api/items/%d/parent", item.ID),
		SetParentRequest{ParentID: &item.ID}, user)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSetParentCycleViaHTTP(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	chain := createChain(t, db, user.ID, 3)
	a, c := chain[0], chain[2]

	resp := doJSON(router, "PUT", fmt.Sprintf("/api/items/%d/parent", a.ID),
		SetParentRequest{ParentID: &c.ID}, user)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}

	// a is still a root
	var reloaded models.Item
	db.First(&reloaded, a.ID)
	if reloaded.ParentID != nil {
		t.Errorf("Expected parent unchanged, got %v", *reloaded.ParentID)
	}
}

func TestSetParentDetach(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	laptop := createTestItem(t, db, user.ID, "Laptop")
	charger := models.Item{OwnerID: user.ID, Name: "Charger", ParentID: &laptop.ID}
	db.Create(&charger)

	resp := doJSON(router, "PUT", fmt.Sprintf("/api/items/%d/parent", charger.ID),
		SetParentRequest{ParentID: nil}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var reloaded models.Item
	db.First(&reloaded, charger.ID)
	if reloaded.ParentID != nil {
		t.Errorf("Expected detached item, got parent %v", *reloaded.ParentID)
	}
}

func TestUpdateItemParentAbsent(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	laptop := createTestItem(t, db, user.ID, "Laptop")
	charger := models.Item{OwnerID: user.ID, Name: "Charger", ParentID: &laptop.ID}
	db.Create(&charger)

	// Raw body without parent_id must leave the parent untouched
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/items/%d", charger.ID),
		bytes.NewBufferString(`{"name":"USB-C Charger"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var reloaded models.Item
	db.First(&reloaded, charger.ID)
	if reloaded.Name != "USB-C Charger" {
		t.Errorf("Expected renamed item, got %s", reloaded.Name)
	}
	if reloaded.ParentID == nil || *reloaded.ParentID != laptop.ID {
		t.Errorf("Expected parent unchanged, got %v", reloaded.ParentID)
	}
}

func TestUpdateItemParentNull(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	laptop := createTestItem(t, db, user.ID, "Laptop")
	charger := models.Item{OwnerID: user.ID, Name: "Charger", ParentID: &laptop.ID}
	db.Create(&charger)

	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/items/%d", charger.ID),
		bytes.NewBufferString(`{"parent_id":null}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var reloaded models.Item
	db.First(&reloaded, charger.ID)
	if reloaded.ParentID != nil {
		t.Errorf("Expected null parent to detach, got %v", *reloaded.ParentID)
	}
}

func TestListItemsFilters(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	fav := models.Item{OwnerID: user.ID, Name: "Camera", IsFavorite: true, Rating: 5, Price: 90000}
	db.Create(&fav)
	plain := models.Item{OwnerID: user.ID, Name: "Cable", Rating: 2, Price: 500}
	db.Create(&plain)

	resp := doJSON(router, "GET", "/api/items?is_favorite=true", nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var page ListItemsResponse
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 1 || page.Items[0].Name != "Camera" {
		t.Errorf("Expected only the favorite, got %+v", page.Items)
	}

	resp = doJSON(router, "GET", "/api/items?min_rating=4", nil, user)
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 1 || page.Items[0].Name != "Camera" {
		t.Errorf("Expected rating filter to match Camera, got %+v", page.Items)
	}

	resp = doJSON(router, "GET", "/api/items?price_max=1000", nil, user)
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 1 || page.Items[0].Name != "Cable" {
		t.Errorf("Expected price filter to match Cable, got %+v", page.Items)
	}

	resp = doJSON(router, "GET", "/api/items?q=Cam", nil, user)
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 1 || page.Items[0].Name != "Camera" {
		t.Errorf("Expected name search to match Camera, got %+v", page.Items)
	}
}

func TestListItemsCursor(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	for i := 0; i < 5; i++ {
		createTestItem(t, db, user.ID, fmt.Sprintf("item-%d", i))
	}

	resp := doJSON(router, "GET", "/api/items?limit=2", nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var page ListItemsResponse
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 2 || page.NextCursor == nil {
		t.Fatalf("Expected full page with cursor, got %d items cursor=%v", len(page.Items), page.NextCursor)
	}

	seen := map[uint]bool{page.Items[0].ID: true, page.Items[1].ID: true}
	total := 2
	for page.NextCursor != nil {
		resp = doJSON(router, "GET", fmt.Sprintf("/api/items?limit=2&cursor=%d", *page.NextCursor), nil, user)
		page = ListItemsResponse{}
		json.Unmarshal(resp.Body.Bytes(), &page)
		for _, it := range page.Items {
			if seen[it.ID] {
				t.Fatalf("Item %d returned twice across pages", it.ID)
			}
			seen[it.ID] = true
			total++
		}
	}
	if total != 5 {
		t.Errorf("Expected 5 items across pages, got %d", total)
	}
}

func TestListItemsTagFilter(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	tagged := createTestItem(t, db, user.ID, "Tagged")
	createTestItem(t, db, user.ID, "Plain")
	tag := models.Tag{OwnerID: user.ID, Name: "travel"}
	db.Create(&tag)
	db.Create(&models.ItemTag{OwnerID: user.ID, ItemID: tagged.ID, TagID: tag.ID, TagNameSnapshot: tag.Name})

	resp := doJSON(router, "GET", fmt.Sprintf("/api/items?tag_id=%d", tag.ID), nil, user)
	var page ListItemsResponse
	json.Unmarshal(resp.Body.Bytes(), &page)
	if len(page.Items) != 1 || page.Items[0].ID != tagged.ID {
		t.Errorf("Expected only the tagged item, got %+v", page.Items)
	}
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")

	resp := doJSON(router, "DELETE", fmt.Sprintf("/api/items/%d", item.ID), nil, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.Item{}).Where("id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Error("Expected item hidden from default queries after delete")
	}
	db.Unscoped().Model(&models.Item{}).Where("id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Error("Expected soft-deleted row to survive unscoped")
	}
}

func TestItemImages(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")

	resp := doJSON(router, "POST", fmt.Sprintf("/api/items/%d/images", item.ID), AddImageRequest{
		URL:        "/uploads/1/2026/01/abc.jpg",
		SetAsCover: true,
	}, user)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var image models.ItemImage
	json.Unmarshal(resp.Body.Bytes(), &image)

	var reloaded models.Item
	db.First(&reloaded, item.ID)
	if reloaded.CoverImageID == nil || *reloaded.CoverImageID != image.ID {
		t.Errorf("Expected cover image %d, got %v", image.ID, reloaded.CoverImageID)
	}

	// Clear the cover
	resp = doJSON(router, "PUT", fmt.Sprintf("/api/items/%d/cover", item.ID), SetCoverRequest{}, user)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	db.First(&reloaded, item.ID)
	if reloaded.CoverImageID != nil {
		t.Errorf("Expected cover cleared, got %v", *reloaded.CoverImageID)
	}
}
