package tags

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/commercekit/catalog/pkg/catalog/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db, zap.NewNop())
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func createTestTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	tag := models.Tag{TagName: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to create test tag: %v", err)
	}
	return tag
}

func createTestProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	product := models.Product{ProductName: name, Price: 5.00, Stock: 2}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

func TestListTagsWithProducts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "vintage")
	createTestTag(t, db, "unused")
	product := createTestProduct(t, db, "Record Player")
	db.Create(&models.ProductTag{ProductID: product.ID, TagID: tag.ID})

	req, _ := http.NewRequest("GET", "/api/tags", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var tags []models.Tag
	json.Unmarshal(resp.Body.Bytes(), &tags)
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}
	for _, got := range tags {
		if got.ID == tag.ID && len(got.Products) != 1 {
			t.Errorf("Expected 1 related product on tag %d, got %d", tag.ID, len(got.Products))
		}
	}
}

func TestGetTagWithProducts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "gift")
	product := createTestProduct(t, db, "Mug")
	db.Create(&models.ProductTag{ProductID: product.ID, TagID: tag.ID})

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/tags/%d", tag.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got models.Tag
	json.Unmarshal(resp.Body.Bytes(), &got)
	if len(got.Products) != 1 || got.Products[0].ProductName != "Mug" {
		t.Errorf("Expected related product Mug, got %+v", got.Products)
	}
}

func TestGetTagNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/tags/999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
	want := `{"message":"No tags found with this id!"}`
	if resp.Body.String() != want {
		t.Errorf("Expected body %s, got %s", want, resp.Body.String())
	}
}

func TestGetTagSolo(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "plain")

	req, _ := http.NewRequest("GET", fmt.Sprintf("/api/tags/solo/%d", tag.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req, _ = http.NewRequest("GET", "/api/tags/solo/999", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
	want := `{"message":"No tag found with this id!"}`
	if resp.Body.String() != want {
		t.Errorf("Expected body %s, got %s", want, resp.Body.String())
	}
}

func TestCreateTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body := []byte(`{"tag_name": "eco"}`)
	req, _ := http.NewRequest("POST", "/api/tags", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got models.Tag
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.ID == 0 || got.TagName != "eco" {
		t.Errorf("Expected created tag eco, got %+v", got)
	}
}

func TestCreateTagMissingName(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("POST", "/api/tags", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "old")

	body := []byte(`{"tag_name": "new"}`)
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/tags/%d", tag.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Body.String() != "1" {
		t.Errorf("Expected update count 1, got %s", resp.Body.String())
	}

	var got models.Tag
	db.First(&got, tag.ID)
	if got.TagName != "new" {
		t.Errorf("Expected tag renamed, got %s", got.TagName)
	}
}

// Tag update failures respond 500, unlike the other resources' 400.
func TestUpdateTagMissingNameIs500(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "keep")

	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/tags/%d", tag.ID), bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	tag := createTestTag(t, db, "fleeting")
	product := createTestProduct(t, db, "Widget")
	db.Create(&models.ProductTag{ProductID: product.ID, TagID: tag.ID})

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/tags/%d", tag.ID), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Body.String() != "1" {
		t.Errorf("Expected deletion count 1, got %s", resp.Body.String())
	}

	// Row is no longer retrievable
	req, _ = http.NewRequest("GET", fmt.Sprintf("/api/tags/solo/%d", tag.ID), nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", resp.Code)
	}

	var pairingCount int64
	db.Model(&models.ProductTag{}).Where("tag_id = ?", tag.ID).Count(&pairingCount)
	if pairingCount != 0 {
		t.Errorf("Expected pairings removed with tag, got %d", pairingCount)
	}
}

func TestDeleteTagNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("DELETE", "/api/tags/999", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
}
