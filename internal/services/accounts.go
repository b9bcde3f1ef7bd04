package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

// usernames: alphanumeric/underscore, 3-20 chars
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

const minPasswordLen = 8

// The same message for an unknown user and a wrong password, so the
// login form never confirms which usernames exist.
const badCredentials = "invalid login or password"

type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// Register creates a new non-admin account with a hashed password.
func (s *Accounts) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validationf("fill all fields")
	}
	if !usernameRe.MatchString(username) {
		return nil, apperr.Validationf("username must be 3-20 letters, digits or underscores")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Validationf("password must be at least %d characters", minPasswordLen)
	}

	var cnt int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&cnt).Error; err != nil {
		return nil, apperr.Wrap(err, "could not check username")
	}
	if cnt > 0 {
		return nil, apperr.Conflictf("username taken")
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(err, "could not hash password")
	}
	u := models.User{Username: username, PasswordHash: hash}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, apperr.Wrap(err, "could not create user")
	}
	return &u, nil
}

// Login verifies credentials and returns the stored user.
func (s *Accounts) Login(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validationf("fill all fields")
	}

	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authf(badCredentials)
		}
		return nil, apperr.Wrap(err, "could not load user")
	}
	if !models.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.Authf(badCredentials)
	}
	return &u, nil
}
