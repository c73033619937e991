package models

// ProductTag is the join row pairing one product with one tag. It carries
// its own primary key so tag reconciliation can remove individual pairings
// without disturbing the ones that survive an update.
//
// There is no unique constraint on (product_id, tag_id): the reconciliation
// never produces a duplicate by itself, but racing writers can.
type ProductTag struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`
	TagID     uint `gorm:"not null;index" json:"tag_id"`
}
