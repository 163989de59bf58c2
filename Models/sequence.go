package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DocumentSequence is the per-document-type, per-month invoice counter.
// One row per (prefix, period); the counter restarts every month.
type DocumentSequence struct {
	ID         uint   `gorm:"primaryKey"`
	Prefix     string `gorm:"size:10;not null;uniqueIndex:idx_doc_seq_prefix_period"`
	Period     string `gorm:"size:6;not null;uniqueIndex:idx_doc_seq_prefix_period"`
	LastNumber int    `gorm:"not null"`
}

// NextDocumentNumber reserves the next PREFIX-YYYYMM-NNNN number for the
// month of t. It must run inside the transaction that inserts the document,
// so the counter bump and the record commit (or roll back) together.
func NextDocumentNumber(tx *gorm.DB, prefix string, t time.Time) (string, error) {
	period := t.Format("200601")

	var seq DocumentSequence
	if err := tx.Where(DocumentSequence{Prefix: prefix, Period: period}).
		FirstOrCreate(&seq).Error; err != nil {
		return "", err
	}

	// Increment in SQL rather than read-modify-write in Go.
	if err := tx.Model(&seq).
		Update("last_number", gorm.Expr("last_number + 1")).Error; err != nil {
		return "", err
	}
	if err := tx.First(&seq, seq.ID).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, period, seq.LastNumber), nil
}
