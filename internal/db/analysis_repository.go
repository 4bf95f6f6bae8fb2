package db

import (
	"github.com/terraincognita07/salesboard/internal/models"
	"gorm.io/gorm"
)

type AnalysisRepository struct {
	database *gorm.DB
}

func NewAnalysisRepository(database *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{database: database}
}

func (repo *AnalysisRepository) Create(analysis *models.Analysis) error {
	return repo.database.Create(analysis).Error
}

func (repo *AnalysisRepository) LatestByUser(userID uint) (models.Analysis, bool, error) {
	var analysis models.Analysis
	result := repo.database.
		Where("user_id = ?", userID).
		Order("analysis_date DESC, id DESC").
		Limit(1).
		Find(&analysis)
	if result.Error != nil {
		return models.Analysis{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Analysis{}, false, nil
	}
	return analysis, true, nil
}
