package db

import (
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
)

var defaultCategories = []string{
	"Books",
	"Clothing",
	"Electronics",
	"Home",
	"Toys",
}

// SeedCategories inserts the default category list, skipping names
// that already exist. Safe to run on every startup.
func SeedCategories(gdb *gorm.DB) error {
	for _, name := range defaultCategories {
		var cnt int64
		if err := gdb.Model(&models.Category{}).Where("name = ?", name).Count(&cnt).Error; err != nil {
			return fmt.Errorf("check category %q: %w", name, err)
		}
		if cnt > 0 {
			continue
		}
		if err := gdb.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// SeedAdminUser creates the bootstrap administrator account. Seeding
// is skipped when no password is configured or the user already
// exists, so restarts never duplicate or overwrite it.
func SeedAdminUser(gdb *gorm.DB, username, password string) error {
	if password == "" {
		return nil
	}
	var cnt int64
	if err := gdb.Model(&models.User{}).Where("username = ?", username).Count(&cnt).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if cnt > 0 {
		return nil
	}
	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{Username: username, PasswordHash: hash, IsAdmin: true}
	if err := gdb.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
