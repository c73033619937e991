package models

import "time"

// Product represents a sellable item in the catalog
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProductName string    `gorm:"not null" json:"product_name"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:product_tags;" json:"related_tags,omitempty"`
}
