package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ProductRow is one catalog entry: a product joined with its category
// name and the average of its review ratings.
type ProductRow struct {
	ID           uint
	Name         string
	Description  string
	PriceCents   int
	CreatedAt    time.Time
	CategoryName *string
	AvgRating    *float64
}

// CategoryLabel is the display name shown in listings.
func (r ProductRow) CategoryLabel() string {
	if r.CategoryName == nil || *r.CategoryName == "" {
		return "Uncategorized"
	}
	return *r.CategoryName
}

// RatingLabel renders the average rating, or a placeholder when the
// product has no reviews yet.
func (r ProductRow) RatingLabel() string {
	if r.AvgRating == nil {
		return "no ratings"
	}
	return fmt.Sprintf("%.1f", *r.AvgRating)
}

// ListProducts returns the catalog newest-first, optionally filtered
// by category name. The filter compares against the joined category,
// so uncategorized products never match a named filter. No
// pagination; the dataset is demo-scale.
func (s *Catalog) ListProducts(category string) ([]ProductRow, error) {
	q := s.db.Table("products").
		Select("products.id, products.name, products.description, products.price_cents, products.created_at, categories.name AS category_name, AVG(reviews.rating) AS avg_rating").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN reviews ON reviews.product_id = products.id").
		Group("products.id, products.name, products.description, products.price_cents, products.created_at, categories.name").
		Order("products.created_at DESC, products.id DESC")
	if category != "" {
		q = q.Where("categories.name = ?", category)
	}

	var rows []ProductRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, "could not list products")
	}
	return rows, nil
}

// Categories returns all category names in alphabetical order.
func (s *Catalog) Categories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.Order("name").Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(err, "could not list categories")
	}
	return cats, nil
}

// GetProduct loads one product with its images and reviews for the
// detail page.
func (s *Catalog) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.Preload("Images").Preload("Reviews.User").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(err, "could not load product")
	}
	return &p, nil
}
