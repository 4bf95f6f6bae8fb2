package models

const DefaultCategory = "عام"

type Product struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       uint    `gorm:"not null;uniqueIndex:idx_products_user_name"`
	Name         string  `gorm:"not null;uniqueIndex:idx_products_user_name"`
	Category     string  `gorm:"not null;default:''"`
	CostPrice    float64 `gorm:"not null;default:0"`
	SellingPrice float64 `gorm:"not null;default:0"`
}

func (product Product) CategoryOrDefault() string {
	if product.Category == "" {
		return DefaultCategory
	}
	return product.Category
}
