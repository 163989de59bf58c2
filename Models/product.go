package Models

import (
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryConstruction    ProductCategory = "construction"
	CategoryExternalFacades ProductCategory = "external_facades"
	CategoryDecorative      ProductCategory = "decorative"
)

type Product struct {
	gorm.Model
	Name     string          `json:"name" gorm:"not null;index"`
	Category ProductCategory `json:"category" gorm:"size:30;not null;index"`
	// Color holds the color / batch label printed on the tin.
	Color string  `json:"color"`
	Price float64 `json:"price" gorm:"not null"`
	// Stock may go negative: overselling is recorded, not rejected.
	Stock int `json:"stock" gorm:"not null;default:0"`
}
