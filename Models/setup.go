package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "pigment.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}
}

// Migrate runs AutoMigrate in dependency order. Kept separate from Connect
// so tests can migrate their own database handle.
func Migrate(db *gorm.DB) error {
	// 1. Base tables with no dependencies
	if err := db.AutoMigrate(
		&User{},
		&Customer{},
		&Product{},
		&DocumentSequence{},
	); err != nil {
		return err
	}

	// 2. Documents and their line items
	if err := db.AutoMigrate(
		&Sale{},
		&SaleItem{},
		&Return{},
		&ReturnItem{},
		&Payment{},
	); err != nil {
		return err
	}

	// 3. Derived records
	return db.AutoMigrate(&CustomerBalance{})
}
