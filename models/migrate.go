package models

import "gorm.io/gorm"

// Migrate creates or updates the categories and products tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Product{})
}
