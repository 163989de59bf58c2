package Models

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	SaleID uint          `json:"sale_id" gorm:"not null;index"`
	Sale   Sale          `json:"sale"`
	Amount float64       `json:"amount" gorm:"not null"`
	Method PaymentMethod `json:"method" gorm:"size:20;not null"`
	Date   time.Time     `json:"date" gorm:"not null;index"`
	// Reference holds the check number or bank transfer reference.
	Reference   string `json:"reference"`
	CreatedByID uint   `json:"created_by_id"`
}
