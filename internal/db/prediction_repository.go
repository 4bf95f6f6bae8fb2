package db

import (
	"github.com/terraincognita07/salesboard/internal/models"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	database *gorm.DB
}

func NewPredictionRepository(database *gorm.DB) *PredictionRepository {
	return &PredictionRepository{database: database}
}

// ReplaceForUser swaps the user's stored forecast for predictions in one
// transaction.
func (repo *PredictionRepository) ReplaceForUser(userID uint, predictions []models.Prediction) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Prediction{}).Error; err != nil {
			return err
		}
		if len(predictions) == 0 {
			return nil
		}
		return tx.CreateInBatches(&predictions, 200).Error
	})
}

func (repo *PredictionRepository) ListByUser(userID uint) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, 0)
	err := repo.database.Where("user_id = ?", userID).Order("prediction_period ASC").Find(&predictions).Error
	return predictions, err
}
