package models

import "time"

// Tag represents a label that can be applied to products
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	TagName   string    `gorm:"not null" json:"tag_name"`

	// Relationships
	Products []Product `gorm:"many2many:product_tags;" json:"related_products,omitempty"`
}
