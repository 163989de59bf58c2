package Models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
)

type PaymentStatus string

// OverdueAfterDays is how old an unpaid invoice must be before it counts as
// overdue, both for the dashboard filter and the nightly status sweep.
const OverdueAfterDays = 30

const (
	StatusPending       PaymentStatus = "pending"
	StatusPaid          PaymentStatus = "paid"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusOverdue       PaymentStatus = "overdue"
	StatusCancelled     PaymentStatus = "cancelled"
)

type Sale struct {
	gorm.Model
	InvoiceNumber string        `json:"invoice_number" gorm:"size:20;not null;uniqueIndex"`
	CustomerID    uint          `json:"customer_id" gorm:"not null;index"`
	Customer      Customer      `json:"customer"`
	Date          time.Time     `json:"date" gorm:"not null;index"`
	Subtotal      float64       `json:"subtotal" gorm:"not null"`
	Discount      float64       `json:"discount" gorm:"not null"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null"` // subtotal - discount
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"size:20;not null"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"size:20;not null;default:pending;index"`
	Notes         string        `json:"notes"`
	CreatedByID   uint          `json:"created_by_id"`
	Items         []SaleItem    `json:"items" gorm:"foreignKey:SaleID"`
}

type SaleItem struct {
	gorm.Model
	SaleID    uint    `json:"sale_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	LineTotal float64 `json:"line_total" gorm:"not null"`
}
