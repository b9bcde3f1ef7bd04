package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/uploads"
)

type Products struct {
	db    *gorm.DB
	files *uploads.Store
	log   *zap.Logger
}

func NewProducts(db *gorm.DB, files *uploads.Store, log *zap.Logger) *Products {
	return &Products{db: db, files: files, log: log}
}

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int
	CategoryID  *uint
}

func (s *Products) validate(in ProductInput) error {
	if in.Name == "" {
		return apperr.Validationf("name is required")
	}
	if in.PriceCents < 0 {
		return apperr.Validationf("price cannot be negative")
	}
	if in.CategoryID != nil {
		var cnt int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *in.CategoryID).Count(&cnt).Error; err != nil {
			return apperr.Wrap(err, "could not check category")
		}
		if cnt == 0 {
			return apperr.Validationf("unknown category")
		}
	}
	return nil
}

// List returns all products newest-first for the admin listing.
func (s *Products) List() ([]models.Product, error) {
	var items []models.Product
	if err := s.db.Preload("Images").Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, apperr.Wrap(err, "could not list products")
	}
	return items, nil
}

// Get loads one product for the edit form.
func (s *Products) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.Preload("Images").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("product not found")
		}
		return nil, apperr.Wrap(err, "could not load product")
	}
	return &p, nil
}

func (s *Products) Create(in ProductInput) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, apperr.Wrap(err, "could not create product")
	}
	return &p, nil
}

// Update edits a product in place. Attached images are unchanged.
func (s *Products) Update(id uint, in ProductInput) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.CategoryID = in.CategoryID
	if err := s.db.Save(p).Error; err != nil {
		return nil, apperr.Wrap(err, "could not save product")
	}
	return p, nil
}

// AttachImage stores an upload for the product under the
// "{productID}_{n}.ext" convention and records it.
func (s *Products) AttachImage(productID uint, fh *multipart.FileHeader) (*models.ProductImage, error) {
	if fh == nil {
		return nil, apperr.Validationf("image file is required")
	}
	p, err := s.Get(productID)
	if err != nil {
		return nil, err
	}
	ext, err := uploads.Ext(fh)
	if err != nil {
		return nil, err
	}

	var cnt int64
	if err := s.db.Model(&models.ProductImage{}).Where("product_id = ?", p.ID).Count(&cnt).Error; err != nil {
		return nil, apperr.Wrap(err, "could not count images")
	}
	name := fmt.Sprintf("%d_%d%s", p.ID, cnt+1, ext)
	if err := s.files.SaveAs(fh, name); err != nil {
		return nil, err
	}

	img := models.ProductImage{ProductID: p.ID, Filename: name}
	if err := s.db.Create(&img).Error; err != nil {
		// keep disk and DB consistent when the row insert fails
		if rmErr := s.files.Remove(name); rmErr != nil {
			s.log.Warn("orphaned product image file", zap.String("file", name), zap.Error(rmErr))
		}
		return nil, apperr.Wrap(err, "could not record image")
	}
	return &img, nil
}

// Delete removes the product, its reviews, its image rows and their
// files. Files go first and tolerate being already gone, so a
// half-finished delete can be retried.
func (s *Products) Delete(id uint) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	for _, img := range p.Images {
		if err := s.files.Remove(img.Filename); err != nil {
			return err
		}
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, p.ID).Error
	})
	if err != nil {
		return apperr.Wrap(err, "could not delete product")
	}
	return nil
}
