package models

import "time"

// Prediction is one forecast day. PredictionPeriod holds the day as
// YYYY-MM-DD.
type Prediction struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index"`
	PredictionPeriod string    `gorm:"not null"`
	PredictedSales   float64   `gorm:"not null;default:0"`
	PredictedProfit  float64   `gorm:"not null;default:0"`
	ConfidenceLower  float64   `gorm:"not null;default:0"`
	ConfidenceUpper  float64   `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
}
