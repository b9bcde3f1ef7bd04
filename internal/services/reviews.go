package services

import (
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

const maxCommentLen = 1000

type Reviews struct {
	db *gorm.DB
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{db: db}
}

// Create records a signed-in user's review of a product.
func (s *Reviews) Create(productID, userID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validationf("rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, apperr.Validationf("comment is required")
	}
	if len(comment) > maxCommentLen {
		return nil, apperr.Validationf("comment is too long")
	}

	var cnt int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&cnt).Error; err != nil {
		return nil, apperr.Wrap(err, "could not check product")
	}
	if cnt == 0 {
		return nil, apperr.NotFoundf("product not found")
	}

	r := models.Review{ProductID: productID, UserID: userID, Rating: rating, Comment: comment}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, apperr.Wrap(err, "could not create review")
	}
	return &r, nil
}
