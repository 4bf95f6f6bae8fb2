package db

import (
	"time"

	"github.com/terraincognita07/salesboard/internal/models"
	"gorm.io/gorm"
)

type SaleRepository struct {
	database *gorm.DB
}

func NewSaleRepository(database *gorm.DB) *SaleRepository {
	return &SaleRepository{database: database}
}

func (repo *SaleRepository) ListByUser(userID uint) ([]models.Sale, error) {
	return repo.ListByUserRange(userID, nil, nil)
}

func (repo *SaleRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Sale, error) {
	query := repo.database.Model(&models.Sale{}).Preload("Product").Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("sale_date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("sale_date < ?", *toEnd)
	}

	sales := make([]models.Sale, 0)
	if err := query.Order("sale_date ASC, id ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (repo *SaleRepository) CreateBatch(tx *gorm.DB, sales []models.Sale) error {
	if tx == nil {
		tx = repo.database
	}
	if len(sales) == 0 {
		return nil
	}
	return tx.Omit("Product").CreateInBatches(&sales, 200).Error
}

// Transaction runs fn with a transaction shared by product and sale writes.
func (repo *SaleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return repo.database.Transaction(fn)
}

// UserIDs lists every user that owns at least one sale.
func (repo *SaleRepository) UserIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.Sale{}).Distinct("user_id").Order("user_id ASC").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
