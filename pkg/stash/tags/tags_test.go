package tags

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rfallows/stash/pkg/stash/apperr"
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

func createTestTag(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Tag {
	tag := models.Tag{OwnerID: ownerID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
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

func itemSnapshot(t *testing.T, db *gorm.DB, itemID uint) []string {
	var item models.Item
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("Failed to reload item: %v", err)
	}
	return item.TagNamesSnapshot
}

func TestSetItemTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag1 := createTestTag(t, db, user.ID, "electronics")
	tag2 := createTestTag(t, db, user.ID, "work")

	if err := SetItemTags(db, user.ID, item.ID, []uint{tag1.ID, tag2.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}

	var assocs []models.ItemTag
	db.Where("item_id = ?", item.ID).Find(&assocs)
	if len(assocs) != 2 {
		t.Fatalf("Expected 2 associations, got %d", len(assocs))
	}
	if assocs[0].TagNameSnapshot == "" {
		t.Error("Expected name snapshot on association")
	}

	snap := itemSnapshot(t, db, item.ID)
	if len(snap) != 2 {
		t.Errorf("Expected 2 snapshot names, got %v", snap)
	}
}

func TestSetItemTagsReplaces(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	oldTag := createTestTag(t, db, user.ID, "old")
	newTag := createTestTag(t, db, user.ID, "new")

	if err := SetItemTags(db, user.ID, item.ID, []uint{oldTag.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}
	if err := SetItemTags(db, user.ID, item.ID, []uint{newTag.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}

	var live []models.ItemTag
	db.Where("item_id = ?", item.ID).Find(&live)
	if len(live) != 1 || live[0].TagID != newTag.ID {
		t.Errorf("Expected only the new association, got %+v", live)
	}

	// The old association is retired, not erased
	var all []models.ItemTag
	db.Unscoped().Where("item_id = ?", item.ID).Find(&all)
	if len(all) != 2 {
		t.Errorf("Expected 2 rows including the retired one, got %d", len(all))
	}

	snap := itemSnapshot(t, db, item.ID)
	if len(snap) != 1 || snap[0] != "new" {
		t.Errorf("Expected snapshot [new], got %v", snap)
	}
}

func TestSetItemTagsEmpty(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag := createTestTag(t, db, user.ID, "only")

	if err := SetItemTags(db, user.ID, item.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}
	if err := SetItemTags(db, user.ID, item.ID, nil); err != nil {
		t.Fatalf("SetItemTags with empty set failed: %v", err)
	}

	var count int64
	db.Model(&models.ItemTag{}).Where("item_id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Errorf("Expected no live associations, got %d", count)
	}

	snap := itemSnapshot(t, db, item.ID)
	if len(snap) != 0 {
		t.Errorf("Expected empty snapshot, got %v", snap)
	}
}

func TestSetItemTagsAtomicOnBadID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	good := createTestTag(t, db, user.ID, "good")

	if err := SetItemTags(db, user.ID, item.ID, []uint{good.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}

	err := SetItemTags(db, user.ID, item.ID, []uint{good.ID, 9999})
	if !errors.Is(err, apperr.ErrInvalidReference) {
		t.Fatalf("Expected ErrInvalidReference, got %v", err)
	}

	// Nothing from the failed resync stuck
	var live []models.ItemTag
	db.Where("item_id = ?", item.ID).Find(&live)
	if len(live) != 1 || live[0].TagID != good.ID {
		t.Errorf("Expected original association intact, got %+v", live)
	}
	snap := itemSnapshot(t, db, item.ID)
	if len(snap) != 1 || snap[0] != "good" {
		t.Errorf("Expected snapshot untouched, got %v", snap)
	}

	var reloaded models.Tag
	db.First(&reloaded, good.ID)
	if reloaded.UsageCount != 1 {
		t.Errorf("Expected usage count untouched at 1, got %d", reloaded.UsageCount)
	}
}

func TestSetItemTagsDeletedTag(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag := createTestTag(t, db, user.ID, "gone")
	db.Delete(&tag)

	err := SetItemTags(db, user.ID, item.ID, []uint{tag.ID})
	if !errors.Is(err, apperr.ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for deleted tag, got %v", err)
	}
}

func TestSetItemTagsOtherOwnersTag(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	item := createTestItem(t, db, owner.ID, "Laptop")
	foreign := createTestTag(t, db, other.ID, "foreign")

	err := SetItemTags(db, owner.ID, item.ID, []uint{foreign.ID})
	if !errors.Is(err, apperr.ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for foreign tag, got %v", err)
	}
}

func TestSetItemTagsMissingItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	tag := createTestTag(t, db, user.ID, "any")

	err := SetItemTags(db, user.ID, 9999, []uint{tag.ID})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUsageCountReassert(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag := createTestTag(t, db, user.ID, "sticky")

	// Re-asserting the same tag counts as a new attachment event each time
	for i := 0; i < 3; i++ {
		if err := SetItemTags(db, user.ID, item.ID, []uint{tag.ID}); err != nil {
			t.Fatalf("SetItemTags failed: %v", err)
		}
	}

	var reloaded models.Tag
	db.First(&reloaded, tag.ID)
	if reloaded.UsageCount != 3 {
		t.Errorf("Expected usage count 3, got %d", reloaded.UsageCount)
	}
}

func TestSnapshotSurvivesRename(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag := createTestTag(t, db, user.ID, "before")

	if err := SetItemTags(db, user.ID, item.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}

	// Rename through the API; snapshots stay stale until the next resync
	name := "after"
	body, _ := json.Marshal(UpdateTagRequest{Name: &name})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/tags/%d", tag.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var assoc models.ItemTag
	db.Where("item_id = ?", item.ID).First(&assoc)
	if assoc.TagNameSnapshot != "before" {
		t.Errorf("Expected association snapshot 'before', got %s", assoc.TagNameSnapshot)
	}
	snap := itemSnapshot(t, db, item.ID)
	if len(snap) != 1 || snap[0] != "before" {
		t.Errorf("Expected item snapshot [before], got %v", snap)
	}

	// A resync refreshes both snapshots to the new name
	if err := SetItemTags(db, user.ID, item.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}
	snap = itemSnapshot(t, db, item.ID)
	if len(snap) != 1 || snap[0] != "after" {
		t.Errorf("Expected refreshed snapshot [after], got %v", snap)
	}
}

func TestCreateTagConflict(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	createTestTag(t, db, user.ID, "dup")

	body, _ := json.Marshal(CreateTagRequest{Name: "dup"})
	req, _ := http.NewRequest("POST", "/api/tags", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateTagRevivesDeletedName(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	tag := createTestTag(t, db, user.ID, "seasonal")
	db.Model(&tag).Update("usage_count", 3)
	if err := db.Delete(&tag).Error; err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}

	body, _ := json.Marshal(CreateTagRequest{Name: "seasonal", Color: "green"})
	req, _ := http.NewRequest("POST", "/api/tags", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 recreating a deleted tag's name, got %d: %s", resp.Code, resp.Body.String())
	}

	var created TagResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if created.ID != tag.ID {
		t.Errorf("Expected the dead row %d to be revived, got new id %d", tag.ID, created.ID)
	}
	if created.Color != "green" {
		t.Errorf("Expected color green, got %q", created.Color)
	}
	if created.UsageCount != 0 {
		t.Errorf("Expected usage count reset to 0, got %d", created.UsageCount)
	}

	var live models.Tag
	if err := db.Where("owner_id = ? AND name = ?", user.ID, "seasonal").First(&live).Error; err != nil {
		t.Errorf("Expected a live tag after revival: %v", err)
	}
}

func TestRenameTagToDeletedNameConflicts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	dead := createTestTag(t, db, user.ID, "retired")
	if err := db.Delete(&dead).Error; err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}
	tag := createTestTag(t, db, user.ID, "current")

	// The dead row still holds the name on the unique index
	name := "retired"
	body, _ := json.Marshal(UpdateTagRequest{Name: &name})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/api/tags/%d", tag.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateTagSameNameOtherOwner(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestTag(t, db, alice.ID, "shared")

	body, _ := json.Marshal(CreateTagRequest{Name: "shared"})
	req, _ := http.NewRequest("POST", "/api/tags", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(bob))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Errorf("Expected status 201 for another owner, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListTagsOrder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	rare := createTestTag(t, db, user.ID, "rare")
	popular := createTestTag(t, db, user.ID, "popular")

	for i := 0; i < 2; i++ {
		if err := SetItemTags(db, user.ID, item.ID, []uint{popular.ID, rare.ID}); err != nil {
			t.Fatalf("SetItemTags failed: %v", err)
		}
	}
	if err := SetItemTags(db, user.ID, item.ID, []uint{popular.ID}); err != nil {
		t.Fatalf("SetItemTags failed: %v", err)
	}

	req, _ := http.NewRequest("GET", "/api/tags", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var tags []TagResponse
	json.Unmarshal(resp.Body.Bytes(), &tags)
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "popular" {
		t.Errorf("Expected most used tag first, got %s", tags[0].Name)
	}
}

func TestSetItemTagsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")
	item := createTestItem(t, db, user.ID, "Laptop")
	tag := createTestTag(t, db, user.ID, "via-http")

	body, _ := json.Marshal(SetItemTagsRequest{TagIDs: []uint{tag.ID}})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/items/%d/tags", item.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/items/%d/tags", item.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSetItemTagsEndpointMissingItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice")

	body, _ := json.Marshal(SetItemTagsRequest{TagIDs: []uint{}})
	req, _ := http.NewRequest("PUT", "/api/items/9999/tags", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}
