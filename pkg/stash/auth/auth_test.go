package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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

func createTestUser(t *testing.T, db *gorm.DB, username, password string, role models.Role, active bool) models.User {
	hash, _ := HashPassword(password)
	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "alice", "password123", models.RoleUser, true)

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var auth AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &auth)
	if auth.Token == "" {
		t.Error("Expected a token in the response")
	}
	if auth.User.Username != "alice" {
		t.Errorf("Expected username alice, got %s", auth.User.Username)
	}

	claims, err := ValidateToken(auth.Token)
	if err != nil {
		t.Fatalf("Returned token does not validate: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected claims for alice, got %s", claims.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "alice", "password123", models.RoleUser, true)

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "wrong"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body, _ := json.Marshal(LoginRequest{Username: "ghost", Password: "whatever"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createTestUser(t, db, "alice", "password123", models.RoleUser, false)

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for disabled account, got %d", resp.Code)
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "alice", "password123", models.RoleAdmin, true)

	token, _ := GenerateToken(user.ID, user.Username, string(user.Role))
	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var me UserResponse
	json.Unmarshal(resp.Body.Bytes(), &me)
	if me.Username != "alice" || me.Role != "admin" {
		t.Errorf("Unexpected profile: %+v", me)
	}
}

func TestMeWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestMeWithGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret" {
		t.Error("Expected hash to differ from the password")
	}
	if !CheckPassword("s3cret", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("Expected wrong password to fail")
	}
}
