package models

// Category — categories table. Static reference data, seeded at startup.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null"`
}
