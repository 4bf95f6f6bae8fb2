package db

import (
	"errors"
	"strings"

	"github.com/terraincognita07/salesboard/internal/models"
	"gorm.io/gorm"
)

type ProductRepository struct {
	database *gorm.DB
}

func NewProductRepository(database *gorm.DB) *ProductRepository {
	return &ProductRepository{database: database}
}

// Upsert returns the owner's product with the candidate's name, creating it
// when missing. An existing row is returned unchanged.
func (repo *ProductRepository) Upsert(tx *gorm.DB, candidate models.Product) (models.Product, error) {
	if tx == nil {
		tx = repo.database
	}
	candidate.Name = strings.TrimSpace(candidate.Name)
	if candidate.Name == "" {
		return models.Product{}, errors.New("product name is required")
	}
	if candidate.UserID == 0 {
		return models.Product{}, errors.New("product owner is required")
	}

	var existing models.Product
	result := tx.Where("user_id = ? AND name = ?", candidate.UserID, candidate.Name).Limit(1).Find(&existing)
	if result.Error != nil {
		return models.Product{}, result.Error
	}
	if result.RowsAffected > 0 {
		return existing, nil
	}
	if err := tx.Create(&candidate).Error; err != nil {
		return models.Product{}, err
	}
	return candidate, nil
}
