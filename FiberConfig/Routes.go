package FiberConfig

import (
	"log"
	"os"

	"Pigment/Controllers"
	"Pigment/Models"
	"Pigment/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	customerController := Controllers.NewCustomerController(db)
	productController := Controllers.NewProductController(db)
	saleController := Controllers.NewSaleController(db)
	returnController := Controllers.NewReturnController(db)
	paymentController := Controllers.NewPaymentController(db)
	dashboardController := Controllers.NewDashboardController(db)
	reportController := Controllers.NewReportController(db)

	// Auth
	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/Logout", Controllers.Logout)
	app.Get("/api/User", middleware.Verify(0), Controllers.CurrentUser)
	app.Post("/api/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)

	api := app.Group("/api")

	// Customer routes
	customers := api.Group("/customers", middleware.Verify(1))
	customers.Get("/", customerController.GetCustomers)
	customers.Post("/", middleware.Verify(2), customerController.CreateCustomer)
	customers.Get("/:id", customerController.GetCustomer)
	customers.Put("/:id", middleware.Verify(2), customerController.UpdateCustomer)
	customers.Delete("/:id", middleware.Verify(3), customerController.DeleteCustomer)
	customers.Get("/:id/balance", customerController.GetCustomerBalance)

	// Product catalog routes
	products := api.Group("/products", middleware.Verify(1))
	products.Get("/", productController.GetProducts)
	products.Post("/", middleware.Verify(2), productController.CreateProduct)
	products.Get("/:id", productController.GetProduct)
	products.Put("/:id", middleware.Verify(2), productController.UpdateProduct)
	products.Delete("/:id", middleware.Verify(3), productController.DeleteProduct)

	// Sales invoice routes
	sales := api.Group("/sales", middleware.Verify(1))
	sales.Get("/", saleController.GetSales)
	sales.Post("/", saleController.CreateSale)
	sales.Get("/:id", saleController.GetSale)
	sales.Put("/:id", middleware.Verify(2), saleController.UpdateSale)
	sales.Get("/:sale_id/payments", paymentController.GetSalePayments)

	// Return routes
	returns := api.Group("/returns", middleware.Verify(1))
	returns.Get("/", returnController.GetReturns)
	returns.Post("/", returnController.CreateReturn)
	returns.Get("/:id", returnController.GetReturn)

	// Payment routes
	payments := api.Group("/payments", middleware.Verify(1))
	payments.Get("/", paymentController.GetPayments)
	payments.Post("/", paymentController.CreatePayment)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.Verify(1))
	dashboard.Get("/stats", dashboardController.Stats)
	dashboard.Get("/monthly", dashboardController.MonthlySales)
	dashboard.Get("/top-customers", dashboardController.TopCustomers)
	dashboard.Get("/recent-activity", dashboardController.RecentActivity)
	dashboard.Get("/overdue", dashboardController.OverdueSales)

	// Report exports
	api.Get("/reports/sales/export", middleware.Verify(2), reportController.ExportSalesReport)
}

func FiberConfig() {
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))

	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: corsOrigins != "*", // cookies need a concrete origin
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "online"})
	})

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server Up on port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
