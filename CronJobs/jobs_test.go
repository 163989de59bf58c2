package CronJobs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Pigment/Models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	return db
}

func seedSale(t *testing.T, db *gorm.DB, number string, age int, status Models.PaymentStatus) Models.Sale {
	t.Helper()

	customer := Models.Customer{Name: "Customer " + number}
	require.NoError(t, db.Create(&customer).Error)

	sale := Models.Sale{
		InvoiceNumber: number,
		CustomerID:    customer.ID,
		Date:          time.Now().AddDate(0, 0, -age),
		Subtotal:      100,
		TotalAmount:   100,
		PaymentMethod: Models.MethodCash,
		PaymentStatus: status,
	}
	require.NoError(t, db.Create(&sale).Error)
	return sale
}

func TestOverdueSweep(t *testing.T) {
	db := newTestDB(t)

	old := seedSale(t, db, "INV-202607-0001", 45, Models.StatusPending)
	partial := seedSale(t, db, "INV-202607-0002", 45, Models.StatusPartiallyPaid)
	paid := seedSale(t, db, "INV-202607-0003", 45, Models.StatusPaid)
	fresh := seedSale(t, db, "INV-202608-0001", 5, Models.StatusPending)

	checker := NewOverdueChecker(db, 30, false)
	checker.RunManualSweep()

	status := func(id uint) Models.PaymentStatus {
		var s Models.Sale
		require.NoError(t, db.First(&s, id).Error)
		return s.PaymentStatus
	}

	assert.Equal(t, Models.StatusOverdue, status(old.ID))
	assert.Equal(t, Models.StatusOverdue, status(partial.ID))
	assert.Equal(t, Models.StatusPaid, status(paid.ID))
	assert.Equal(t, Models.StatusPending, status(fresh.ID))
}

func TestOverdueSweepIdempotent(t *testing.T) {
	db := newTestDB(t)

	sale := seedSale(t, db, "INV-202606-0001", 60, Models.StatusPending)

	checker := NewOverdueChecker(db, 30, false)
	checker.RunManualSweep()
	checker.RunManualSweep()

	var updated Models.Sale
	require.NoError(t, db.First(&updated, sale.ID).Error)
	assert.Equal(t, Models.StatusOverdue, updated.PaymentStatus)
}

func TestOverdueCheckerStartStop(t *testing.T) {
	db := newTestDB(t)

	checker := NewOverdueChecker(db, 30, false)
	require.NoError(t, checker.Start())
	checker.Stop()
}
