package Models

import (
	"time"

	"gorm.io/gorm"
)

type Return struct {
	gorm.Model
	ReturnNumber string       `json:"return_number" gorm:"size:20;not null;uniqueIndex"`
	SaleID       uint         `json:"sale_id" gorm:"not null;index"`
	Sale         Sale         `json:"sale"`
	CustomerID   uint         `json:"customer_id" gorm:"not null;index"`
	Customer     Customer     `json:"customer"`
	Date         time.Time    `json:"date" gorm:"not null;index"`
	TotalAmount  float64      `json:"total_amount" gorm:"not null"`
	Reason       string       `json:"reason"`
	CreatedByID  uint         `json:"created_by_id"`
	Items        []ReturnItem `json:"items" gorm:"foreignKey:ReturnID"`
}

type ReturnItem struct {
	gorm.Model
	ReturnID  uint    `json:"return_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	LineTotal float64 `json:"line_total" gorm:"not null"`
}
