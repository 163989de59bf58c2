package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// DashboardController handles the financial dashboard API endpoints
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// DashboardStats is the aggregate snapshot shown on the landing page
type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`
	SalesCount     int64   `json:"sales_count"`
	TotalReturns   float64 `json:"total_returns"`
	ReturnsCount   int64   `json:"returns_count"`
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
	Outstanding    float64 `json:"outstanding"`
}

// Stats returns overall counts and sums across the whole dataset
func (c *DashboardController) Stats(ctx *fiber.Ctx) error {
	var stats DashboardStats

	c.DB.Model(&Models.Sale{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalSales)
	c.DB.Model(&Models.Sale{}).Count(&stats.SalesCount)
	c.DB.Model(&Models.Return{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalReturns)
	c.DB.Model(&Models.Return{}).Count(&stats.ReturnsCount)
	c.DB.Model(&Models.Customer{}).Count(&stats.TotalCustomers)
	c.DB.Model(&Models.Product{}).Count(&stats.TotalProducts)

	// Money still owed by customers, summed over positive balances only
	c.DB.Model(&Models.CustomerBalance{}).
		Where("balance > 0").
		Select("COALESCE(SUM(balance), 0)").
		Scan(&stats.Outstanding)

	return ctx.JSON(stats)
}

// MonthlySales returns sales, returns and net figures per month for the
// last 12 months. Amounts are bucketed in Go rather than with SQL date
// functions, which differ per database engine.
func (c *DashboardController) MonthlySales(ctx *fiber.Ctx) error {
	type MonthlyData struct {
		Month   string  `json:"month"`
		Sales   float64 `json:"sales"`
		Returns float64 `json:"returns"`
		Net     float64 `json:"net"`
	}

	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0)

	var sales []Models.Sale
	if result := c.DB.Where("date BETWEEN ? AND ?", startDate, endDate).Find(&sales); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}

	var returns []Models.Return
	if result := c.DB.Where("date BETWEEN ? AND ?", startDate, endDate).Find(&returns); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve returns"})
	}

	// Create entries for all 12 months, even if no data
	monthlySummary := make(map[string]*MonthlyData)
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthlySummary[date.Format("2006-01")] = &MonthlyData{
			Month: date.Format("Jan 2006"),
		}
	}

	for _, sale := range sales {
		if data, exists := monthlySummary[sale.Date.Format("2006-01")]; exists {
			data.Sales += sale.TotalAmount
			data.Net = data.Sales - data.Returns
		}
	}
	for _, ret := range returns {
		if data, exists := monthlySummary[ret.Date.Format("2006-01")]; exists {
			data.Returns += ret.TotalAmount
			data.Net = data.Sales - data.Returns
		}
	}

	// Oldest month first
	var response []MonthlyData
	for i := 11; i >= 0; i-- {
		date := endDate.AddDate(0, -i, 0)
		if data, exists := monthlySummary[date.Format("2006-01")]; exists {
			response = append(response, *data)
		}
	}

	return ctx.JSON(response)
}

// TopCustomers returns the five customers with the highest invoiced volume
func (c *DashboardController) TopCustomers(ctx *fiber.Ctx) error {
	type CustomerSummary struct {
		ID         uint    `json:"id"`
		Name       string  `json:"name"`
		Sales      float64 `json:"sales"`
		SalesCount int     `json:"sales_count"`
	}

	var results []CustomerSummary

	c.DB.Raw(`
		SELECT
			c.id,
			c.name,
			SUM(s.total_amount) as sales,
			COUNT(s.id) as sales_count
		FROM customers c
		JOIN sales s ON s.customer_id = c.id
		WHERE c.deleted_at IS NULL
		AND s.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY sales DESC
		LIMIT 5
	`).Scan(&results)

	return ctx.JSON(results)
}

// RecentActivity returns the latest sales and payments for the activity feed
func (c *DashboardController) RecentActivity(ctx *fiber.Ctx) error {
	var sales []Models.Sale
	c.DB.Preload("Customer").Order("created_at DESC").Limit(10).Find(&sales)

	var payments []Models.Payment
	c.DB.Preload("Sale").Order("created_at DESC").Limit(10).Find(&payments)

	return ctx.JSON(fiber.Map{
		"sales":    sales,
		"payments": payments,
	})
}

// OverdueSales lists unpaid or partially paid invoices older than the grace
// period. This is computed at query time, so the list is accurate even
// between runs of the nightly status sweep.
func (c *DashboardController) OverdueSales(ctx *fiber.Ctx) error {
	cutoff := time.Now().AddDate(0, 0, -Models.OverdueAfterDays)

	var sales []Models.Sale
	result := c.DB.Preload("Customer").
		Where("payment_status IN ? AND date < ?",
			[]Models.PaymentStatus{Models.StatusPending, Models.StatusPartiallyPaid, Models.StatusOverdue},
			cutoff).
		Order("date").
		Find(&sales)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve overdue sales"})
	}

	return ctx.JSON(sales)
}
