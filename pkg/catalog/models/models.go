package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: Category must be migrated before Product, which references it
func AllModels() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
		&Tag{},
		&ProductTag{},
	}
}

// AutoMigrate registers the product_tags join model and runs GORM
// auto-migration for all models. The join table must be set up before
// migration so its rows keep their own primary key.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Product{}, "Tags", &ProductTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Tag{}, "Products", &ProductTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(AllModels()...)
}
