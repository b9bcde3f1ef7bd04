package models

// Product — products table.
type Product struct {
	Base
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	PriceCents  int    `gorm:"not null"`
	CategoryID  *uint  `gorm:"index"`
	Images      []ProductImage
	Reviews     []Review
}

// ProductImage — product_images table. Filename is relative to the
// uploads directory, following the "{productID}_{n}.ext" convention.
type ProductImage struct {
	Base
	ProductID uint   `gorm:"index;not null"`
	Filename  string `gorm:"not null"`
}
