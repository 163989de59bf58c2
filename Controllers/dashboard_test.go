package Controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pigment/Models"
)

func TestDashboardStats(t *testing.T) {
	app, db := newTestApp(t)

	customer := seedCustomer(t, db, "Nile Decor", 0)
	other := seedCustomer(t, db, "El Salam Paints", 0)
	product := seedProduct(t, db, "Matte White 5L", 10, 100)

	resp, body := doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 3, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale saleEnvelope
	decodeJSON(t, body, &sale)

	resp, _ = doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    other.ID,
		"payment_method": "check",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 5, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/payments", fiber.Map{
		"sale_id": sale.Data.ID,
		"amount":  30,
		"method":  "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/returns", fiber.Map{
		"sale_id": sale.Data.ID,
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats DashboardStats
	decodeJSON(t, body, &stats)
	assert.Equal(t, 80.0, stats.TotalSales)
	assert.Equal(t, int64(2), stats.SalesCount)
	assert.Equal(t, 10.0, stats.TotalReturns)
	assert.Equal(t, int64(1), stats.ReturnsCount)
	assert.Equal(t, int64(2), stats.TotalCustomers)
	assert.Equal(t, int64(1), stats.TotalProducts)
	// Only the second customer still owes; the first is at -10.
	assert.Equal(t, 50.0, stats.Outstanding)
}

func TestDashboardTopCustomers(t *testing.T) {
	app, db := newTestApp(t)

	big := seedCustomer(t, db, "El Salam Paints", 0)
	small := seedCustomer(t, db, "Walk-in", 0)
	product := seedProduct(t, db, "Primer 10L", 50, 100)

	resp, _ := doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    big.ID,
		"payment_method": "bank_transfer",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 4},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    small.ID,
		"payment_method": "cash",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/dashboard/top-customers", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []struct {
		ID         uint    `json:"id"`
		Name       string  `json:"name"`
		Sales      float64 `json:"sales"`
		SalesCount int     `json:"sales_count"`
	}
	decodeJSON(t, body, &results)
	require.Len(t, results, 2)
	assert.Equal(t, "El Salam Paints", results[0].Name)
	assert.Equal(t, 200.0, results[0].Sales)
	assert.Equal(t, 1, results[0].SalesCount)
	assert.Equal(t, "Walk-in", results[1].Name)
}

func TestDashboardMonthlySales(t *testing.T) {
	app, db := newTestApp(t)

	customer := seedCustomer(t, db, "Nile Decor", 0)
	product := seedProduct(t, db, "Matte White 5L", 10, 100)

	resp, _ := doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"date":           time.Now().Format("2006-01-02"),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 2, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/dashboard/monthly", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var months []struct {
		Month   string  `json:"month"`
		Sales   float64 `json:"sales"`
		Returns float64 `json:"returns"`
		Net     float64 `json:"net"`
	}
	decodeJSON(t, body, &months)
	require.Len(t, months, 12)

	// Oldest first, current month last holds today's invoice.
	current := months[len(months)-1]
	assert.Equal(t, time.Now().Format("Jan 2006"), current.Month)
	assert.Equal(t, 20.0, current.Sales)
	assert.Equal(t, 20.0, current.Net)
}

func TestDashboardOverdueSales(t *testing.T) {
	app, db := newTestApp(t)

	customer := seedCustomer(t, db, "Nile Decor", 0)
	product := seedProduct(t, db, "Matte White 5L", 10, 100)

	oldDate := time.Now().AddDate(0, 0, -45).Format("2006-01-02")

	resp, body := doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"date":           oldDate,
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var overdue saleEnvelope
	decodeJSON(t, body, &overdue)

	// A fresh invoice stays off the list.
	resp, _ = doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": 10},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/dashboard/overdue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sales []Models.Sale
	decodeJSON(t, body, &sales)
	require.Len(t, sales, 1)
	assert.Equal(t, overdue.Data.ID, sales[0].ID)

	// Paying off the old invoice clears it from the list.
	resp, _ = doJSON(t, app, "POST", "/api/payments", fiber.Map{
		"sale_id": overdue.Data.ID,
		"amount":  10,
		"method":  "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/dashboard/overdue", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, body, &sales)
	assert.Len(t, sales, 0)
}

func TestDashboardRecentActivity(t *testing.T) {
	app, db := newTestApp(t)

	customer := seedCustomer(t, db, "Nile Decor", 0)
	product := seedProduct(t, db, "Matte White 5L", 10, 100)

	resp, body := doJSON(t, app, "POST", "/api/sales", fiber.Map{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale saleEnvelope
	decodeJSON(t, body, &sale)

	resp, _ = doJSON(t, app, "POST", "/api/payments", fiber.Map{
		"sale_id": sale.Data.ID,
		"amount":  10,
		"method":  "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/dashboard/recent-activity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activity struct {
		Sales    []Models.Sale    `json:"sales"`
		Payments []Models.Payment `json:"payments"`
	}
	decodeJSON(t, body, &activity)
	require.Len(t, activity.Sales, 1)
	require.Len(t, activity.Payments, 1)
	assert.Equal(t, sale.Data.ID, activity.Payments[0].SaleID)
}
