package models

import "time"

// Analysis is a stored snapshot of a user's headline figures. SalesCount and
// LastSaleID identify the sales it was computed from.
type Analysis struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	TotalSales   float64   `gorm:"not null;default:0"`
	TotalProfit  float64   `gorm:"not null;default:0"`
	BestProduct  string    `gorm:"not null;default:''"`
	WorstProduct string    `gorm:"not null;default:''"`
	SalesCount   int       `gorm:"not null;default:0"`
	LastSaleID   uint      `gorm:"not null;default:0"`
	AnalysisDate time.Time `gorm:"not null"`
}

// SameSource reports whether both snapshots were computed from the same sales.
func (analysis Analysis) SameSource(other Analysis) bool {
	return analysis.UserID == other.UserID &&
		analysis.SalesCount == other.SalesCount &&
		analysis.LastSaleID == other.LastSaleID &&
		analysis.TotalSales == other.TotalSales
}
