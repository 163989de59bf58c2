package Models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecalculateCustomerBalance recomputes the derived balance row for one
// customer from a full scan of their sales, returns and payments, then
// upserts the single CustomerBalance record. It is idempotent; callers run
// it inside the same transaction as the write that triggered it so the
// stored balance can never diverge from the underlying records.
func RecalculateCustomerBalance(tx *gorm.DB, customerID uint) error {
	var totalSales float64
	if err := tx.Model(&Sale{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalSales).Error; err != nil {
		return err
	}

	var totalReturns float64
	if err := tx.Model(&Return{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalReturns).Error; err != nil {
		return err
	}

	var totalPayments float64
	if err := tx.Model(&Payment{}).
		Joins("JOIN sales ON sales.id = payments.sale_id").
		Where("sales.customer_id = ? AND sales.deleted_at IS NULL", customerID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&totalPayments).Error; err != nil {
		return err
	}

	balance := CustomerBalance{
		CustomerID:    customerID,
		TotalSales:    totalSales,
		TotalPayments: totalPayments,
		TotalReturns:  totalReturns,
		Balance:       totalSales - totalPayments - totalReturns,
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_sales", "total_payments", "total_returns", "balance", "updated_at",
		}),
	}).Create(&balance).Error
}

// SettleSalePaymentStatus re-derives a sale's payment status from the sum of
// its payments: paid when they cover the total, partially_paid when some but
// not all of it is covered, pending otherwise. Cancelled sales keep their
// status; overdue is assigned elsewhere (CronJobs) and is cleared here once
// money comes in.
func SettleSalePaymentStatus(tx *gorm.DB, saleID uint) error {
	var sale Sale
	if err := tx.First(&sale, saleID).Error; err != nil {
		return err
	}
	if sale.PaymentStatus == StatusCancelled {
		return nil
	}

	var paid float64
	if err := tx.Model(&Payment{}).
		Where("sale_id = ?", saleID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return err
	}

	status := StatusPending
	switch {
	case sale.TotalAmount > 0 && paid >= sale.TotalAmount:
		status = StatusPaid
	case paid > 0:
		status = StatusPartiallyPaid
	case sale.PaymentStatus == StatusOverdue:
		// nothing paid yet, keep the overdue flag
		status = StatusOverdue
	}

	return tx.Model(&sale).Update("payment_status", status).Error
}
