package Models

import (
	"gorm.io/gorm"
)

type CustomerType string

const (
	CustomerInstitution CustomerType = "institution"
	CustomerStore       CustomerType = "store"
	CustomerIndividual  CustomerType = "individual"
)

type Customer struct {
	gorm.Model
	Name    string       `json:"name" gorm:"not null;index"`
	Phone   string       `json:"phone"`
	Address string       `json:"address"`
	Type    CustomerType `json:"type" gorm:"size:20;not null;default:individual"`
	// Discount is the default discount percentage applied to this
	// customer's new invoices when the invoice doesn't override it.
	Discount float64 `json:"discount"`
}
