package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Pigment/Models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// OverdueChecker marks unpaid invoices as overdue once they pass the grace
// period. The dashboard also filters overdue invoices at query time, so the
// sweep only keeps the stored status in step with what the filter shows.
type OverdueChecker struct {
	cronScheduler  *cron.Cron
	db             *gorm.DB
	graceDays      int
	runImmediately bool
	jobID          cron.EntryID
}

// NewOverdueChecker creates a new overdue checker with the given grace period
func NewOverdueChecker(db *gorm.DB, graceDays int, runImmediately bool) *OverdueChecker {
	return &OverdueChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		db:             db,
		graceDays:      graceDays,
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly sweep
func (o *OverdueChecker) Start() error {
	var err error
	o.jobID, err = o.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled overdue invoice sweep")
		o.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	o.cronScheduler.Start()
	log.Println("Overdue sweep scheduled - will run daily at 1:00 AM")

	if o.runImmediately {
		log.Println("Running initial overdue sweep")
		o.runSweep()
	}

	return nil
}

// Stop terminates the scheduler
func (o *OverdueChecker) Stop() {
	if o.cronScheduler != nil {
		o.cronScheduler.Stop()
		log.Println("Overdue sweep scheduler stopped")
	}
}

// RunManualSweep executes a sweep outside the schedule
func (o *OverdueChecker) RunManualSweep() {
	log.Println("Running manual overdue sweep")
	o.runSweep()
}

func (o *OverdueChecker) runSweep() {
	cutoff := time.Now().AddDate(0, 0, -o.graceDays)

	result := o.db.Model(&Models.Sale{}).
		Where("payment_status IN ? AND date < ?",
			[]Models.PaymentStatus{Models.StatusPending, Models.StatusPartiallyPaid},
			cutoff).
		Update("payment_status", Models.StatusOverdue)

	if result.Error != nil {
		log.Println("Overdue sweep failed:", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Overdue sweep marked %d invoice(s) overdue\n", result.RowsAffected)
	}
}
