package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	tables := []string{"categories", "products", "tags", "product_tags"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestProductModel(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	cat := Category{CategoryName: "Sports"}
	db.Create(&cat)

	product := Product{
		ProductName: "Basketball",
		Price:       20.00,
		Stock:       3,
		CategoryID:  &cat.ID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if product.ID == 0 {
		t.Error("Expected product ID to be set after create")
	}

	var got Product
	if err := db.Preload("Category").First(&got, product.ID).Error; err != nil {
		t.Fatalf("Failed to fetch product: %v", err)
	}
	if got.Category == nil || got.Category.CategoryName != "Sports" {
		t.Errorf("Expected category Sports, got %+v", got.Category)
	}
}

func TestProductWithoutCategory(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	product := Product{ProductName: "Uncategorized Thing", Price: 1.00}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product without category: %v", err)
	}
	if product.CategoryID != nil {
		t.Error("Expected nil category id")
	}
}

func TestJoinRowIdentity(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	product := Product{ProductName: "Scarf", Price: 12.00}
	db.Create(&product)
	tag1 := Tag{TagName: "wool"}
	tag2 := Tag{TagName: "winter"}
	db.Create(&tag1)
	db.Create(&tag2)

	pt1 := ProductTag{ProductID: product.ID, TagID: tag1.ID}
	pt2 := ProductTag{ProductID: product.ID, TagID: tag2.ID}
	db.Create(&pt1)
	db.Create(&pt2)

	if pt1.ID == 0 || pt2.ID == 0 {
		t.Error("Expected join rows to carry their own primary keys")
	}
	if pt1.ID == pt2.ID {
		t.Error("Expected distinct join row ids")
	}

	// The pairing surfaces through the many2many association
	var got Product
	if err := db.Preload("Tags").First(&got, product.ID).Error; err != nil {
		t.Fatalf("Failed to fetch product with tags: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Expected 2 related tags, got %d", len(got.Tags))
	}
}
