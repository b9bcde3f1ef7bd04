package services

import (
	"errors"
	"mime/multipart"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/uploads"
)

// Posts is the photo-blog service. Each post owns one image file in
// the uploads directory; file and row are kept consistent on delete.
type Posts struct {
	db    *gorm.DB
	files *uploads.Store
	log   *zap.Logger
}

func NewPosts(db *gorm.DB, files *uploads.Store, log *zap.Logger) *Posts {
	return &Posts{db: db, files: files, log: log}
}

func (s *Posts) List() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, apperr.Wrap(err, "could not list posts")
	}
	return posts, nil
}

func (s *Posts) Get(id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("post not found")
		}
		return nil, apperr.Wrap(err, "could not load post")
	}
	return &p, nil
}

// Create stores the uploaded image and inserts the post row. The
// image is required; the post date is the server-side CreatedAt.
func (s *Posts) Create(caption string, fh *multipart.FileHeader) (*models.Post, error) {
	if fh == nil {
		return nil, apperr.Validationf("image file is required")
	}
	name, err := s.files.SaveTimestamped(fh)
	if err != nil {
		return nil, err
	}
	p := models.Post{Image: name, Caption: caption}
	if err := s.db.Create(&p).Error; err != nil {
		if rmErr := s.files.Remove(name); rmErr != nil {
			s.log.Warn("orphaned post image file", zap.String("file", name), zap.Error(rmErr))
		}
		return nil, apperr.Wrap(err, "could not create post")
	}
	return &p, nil
}

// UpdateCaption edits a post's caption. The attached image cannot be
// changed after creation.
func (s *Posts) UpdateCaption(id uint, caption string) (*models.Post, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	p.Caption = caption
	if err := s.db.Save(p).Error; err != nil {
		return nil, apperr.Wrap(err, "could not save post")
	}
	return p, nil
}

// Delete removes the backing file, then the row. The file step
// tolerates an already-missing file, so a crash between the two
// steps leaves a state this same call can clean up.
func (s *Posts) Delete(id uint) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.files.Remove(p.Image); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Post{}, p.ID).Error; err != nil {
		return apperr.Wrap(err, "could not delete post")
	}
	return nil
}
