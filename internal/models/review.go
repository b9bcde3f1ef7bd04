package models

// Review — reviews table. Rating is a 1..5 integer; the catalog
// listing aggregates it into a per-product average.
type Review struct {
	Base
	ProductID uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	User      User
}
