package Models

import (
	"gorm.io/gorm"
)

// Permission levels: 1 = sales clerk, 2 = accountant, 3 = manager, 4 = owner
type User struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Username   string `json:"username" gorm:"not null;uniqueIndex"`
	Password   []byte `json:"-" gorm:"not null"`
	Permission int    `json:"permission" gorm:"not null;default:1"`
}
