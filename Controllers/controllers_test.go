package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
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

// newTestApp wires every controller onto a bare fiber app, without the auth
// middleware, so handlers can be driven directly.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	app := fiber.New()

	customers := NewCustomerController(db)
	products := NewProductController(db)
	sales := NewSaleController(db)
	returns := NewReturnController(db)
	payments := NewPaymentController(db)
	dashboard := NewDashboardController(db)

	api := app.Group("/api")

	api.Get("/customers", customers.GetCustomers)
	api.Post("/customers", customers.CreateCustomer)
	api.Get("/customers/:id", customers.GetCustomer)
	api.Put("/customers/:id", customers.UpdateCustomer)
	api.Delete("/customers/:id", customers.DeleteCustomer)
	api.Get("/customers/:id/balance", customers.GetCustomerBalance)

	api.Get("/products", products.GetProducts)
	api.Post("/products", products.CreateProduct)
	api.Get("/products/:id", products.GetProduct)
	api.Put("/products/:id", products.UpdateProduct)
	api.Delete("/products/:id", products.DeleteProduct)

	api.Get("/sales", sales.GetSales)
	api.Post("/sales", sales.CreateSale)
	api.Get("/sales/:id", sales.GetSale)
	api.Put("/sales/:id", sales.UpdateSale)
	api.Get("/sales/:sale_id/payments", payments.GetSalePayments)

	api.Get("/returns", returns.GetReturns)
	api.Post("/returns", returns.CreateReturn)
	api.Get("/returns/:id", returns.GetReturn)

	api.Get("/payments", payments.GetPayments)
	api.Post("/payments", payments.CreatePayment)

	api.Get("/dashboard/stats", dashboard.Stats)
	api.Get("/dashboard/monthly", dashboard.MonthlySales)
	api.Get("/dashboard/top-customers", dashboard.TopCustomers)
	api.Get("/dashboard/recent-activity", dashboard.RecentActivity)
	api.Get("/dashboard/overdue", dashboard.OverdueSales)

	return app, db
}

// doJSON performs a request against the test app and returns the response
// together with its decoded body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeJSON(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, discount float64) Models.Customer {
	t.Helper()
	customer := Models.Customer{Name: name, Type: Models.CustomerStore, Discount: discount}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) Models.Product {
	t.Helper()
	product := Models.Product{Name: name, Category: Models.CategoryDecorative, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}
