package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Products    *ProductRepository
	Sales       *SaleRepository
	Analyses    *AnalysisRepository
	Predictions *PredictionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Products:    NewProductRepository(database),
		Sales:       NewSaleRepository(database),
		Analyses:    NewAnalysisRepository(database),
		Predictions: NewPredictionRepository(database),
	}
}
