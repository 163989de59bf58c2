package Models

import (
	"gorm.io/gorm"
)

// AdjustProductStock applies a signed quantity delta to a product's stock.
// Sale items pass a negative delta, return items a positive one. There is
// no floor at zero: overselling drives the stock negative instead of
// failing the invoice.
func AdjustProductStock(tx *gorm.DB, productID uint, delta int) error {
	return tx.Model(&Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
