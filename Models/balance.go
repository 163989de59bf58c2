package Models

import (
	"gorm.io/gorm"
)

// CustomerBalance is a derived record: one row per customer, recomputed
// wholesale by RecalculateCustomerBalance after every mutation that touches
// the customer's sales, payments or returns. Never edited directly.
type CustomerBalance struct {
	gorm.Model
	CustomerID    uint    `json:"customer_id" gorm:"not null;uniqueIndex"`
	TotalSales    float64 `json:"total_sales" gorm:"not null"`
	TotalPayments float64 `json:"total_payments" gorm:"not null"`
	TotalReturns  float64 `json:"total_returns" gorm:"not null"`
	Balance       float64 `json:"balance" gorm:"not null"` // sales - payments - returns
}
