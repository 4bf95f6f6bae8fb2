package models

import "time"

type Sale struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;index"`
	ProductID  uint      `gorm:"not null;index"`
	Product    Product   `gorm:"foreignKey:ProductID"`
	Quantity   int       `gorm:"not null"`
	TotalPrice float64   `gorm:"not null"`
	SaleDate   time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (sale Sale) UnitPrice() float64 {
	if sale.Quantity <= 0 {
		return 0
	}
	return sale.TotalPrice / float64(sale.Quantity)
}
