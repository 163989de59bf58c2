package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// SaleController handles sales invoice API endpoints
type SaleController struct {
	DB *gorm.DB
}

// NewSaleController creates a new SaleController
func NewSaleController(db *gorm.DB) *SaleController {
	return &SaleController{DB: db}
}

type SaleItemInput struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type CreateSaleInput struct {
	CustomerID    uint            `json:"customer_id" validate:"required"`
	Date          string          `json:"date"`
	Discount      *float64        `json:"discount" validate:"omitempty,gte=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash credit_card bank_transfer check"`
	Notes         string          `json:"notes"`
	Items         []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateSaleInput struct {
	Date          *string         `json:"date"`
	Discount      *float64        `json:"discount" validate:"omitempty,gte=0"`
	PaymentMethod *string         `json:"payment_method" validate:"omitempty,oneof=cash credit_card bank_transfer check"`
	PaymentStatus *string         `json:"payment_status" validate:"omitempty,oneof=pending paid partially_paid overdue cancelled"`
	Notes         *string         `json:"notes"`
	Items         []SaleItemInput `json:"items" validate:"omitempty,min=1,dive"`
}

// parseSaleDate accepts YYYY-MM-DD and defaults to today when omitted.
func parseSaleDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", value)
}

// actingUserID resolves the creator reference set by the auth middleware.
func actingUserID(ctx *fiber.Ctx) uint {
	if user, ok := ctx.Locals("user").(Models.User); ok {
		return user.ID
	}
	return 0
}

// GetSales retrieves sales with optional customer, status and date filters
func (c *SaleController) GetSales(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Customer").Preload("Items.Product")

	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if start := ctx.Query("start_date"); start != "" {
		if startDate, err := time.Parse("2006-01-02", start); err == nil {
			query = query.Where("date >= ?", startDate)
		}
	}
	if end := ctx.Query("end_date"); end != "" {
		if endDate, err := time.Parse("2006-01-02", end); err == nil {
			query = query.Where("date < ?", endDate.AddDate(0, 0, 1))
		}
	}

	var sales []Models.Sale
	if result := query.Order("date DESC, id DESC").Find(&sales); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}

	return ctx.JSON(sales)
}

// GetSale retrieves a single sale with its items, payments and balance due
func (c *SaleController) GetSale(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var sale Models.Sale
	result := c.DB.Preload("Customer").Preload("Items.Product").First(&sale, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	var payments []Models.Payment
	c.DB.Where("sale_id = ?", sale.ID).Order("date").Find(&payments)

	var paid float64
	for _, payment := range payments {
		paid += payment.Amount
	}

	return ctx.JSON(fiber.Map{
		"sale":        sale,
		"payments":    payments,
		"paid":        paid,
		"balance_due": sale.TotalAmount - paid,
	})
}

// CreateSale creates an invoice: assigns the INV number, stores the line
// items, deducts stock and recomputes the customer balance, all in one
// transaction.
func (c *SaleController) CreateSale(ctx *fiber.Ctx) error {
	var input CreateSaleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := parseSaleDate(input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, input.CustomerID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	var subtotal float64
	var items []Models.SaleItem

	for _, item := range input.Items {
		var product Models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.Price
		}
		lineTotal := unitPrice * float64(item.Quantity)
		subtotal += lineTotal

		// Overselling is allowed: stock simply goes negative.
		if err := Models.AdjustProductStock(tx, product.ID, -item.Quantity); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update stock"})
		}

		items = append(items, Models.SaleItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	// The customer's standing discount applies unless the invoice overrides it.
	discount := subtotal * customer.Discount / 100
	if input.Discount != nil {
		discount = *input.Discount
	}

	invoiceNumber, err := Models.NextDocumentNumber(tx, "INV", date)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign invoice number"})
	}

	sale := Models.Sale{
		InvoiceNumber: invoiceNumber,
		CustomerID:    customer.ID,
		Date:          date,
		Subtotal:      subtotal,
		Discount:      discount,
		TotalAmount:   subtotal - discount,
		PaymentMethod: Models.PaymentMethod(input.PaymentMethod),
		PaymentStatus: Models.StatusPending,
		Notes:         input.Notes,
		CreatedByID:   actingUserID(ctx),
		Items:         items,
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create sale"})
	}

	if err := Models.RecalculateCustomerBalance(tx, customer.ID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer balance"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	c.DB.Preload("Customer").Preload("Items.Product").First(&sale, sale.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sale created successfully",
		"data":    sale,
	})
}

// UpdateSale merges partial fields into a sale. When items are supplied the
// old line items are reverted against stock and replaced by the new ones,
// and the totals, payment status and customer balance are recomputed.
func (c *SaleController) UpdateSale(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var sale Models.Sale
	if result := c.DB.Preload("Items").First(&sale, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	var input UpdateSaleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	updates := map[string]interface{}{}

	if input.Date != nil {
		date, err := time.Parse("2006-01-02", *input.Date)
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
		}
		updates["date"] = date
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		updates["payment_status"] = *input.PaymentStatus
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	subtotal := sale.Subtotal

	if len(input.Items) > 0 {
		// Revert the old items before applying the replacements.
		for _, item := range sale.Items {
			if err := Models.AdjustProductStock(tx, item.ProductID, item.Quantity); err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revert stock"})
			}
		}
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&Models.SaleItem{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace items"})
		}

		subtotal = 0
		var items []Models.SaleItem
		for _, item := range input.Items {
			var product Models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
			}

			unitPrice := item.UnitPrice
			if unitPrice == 0 {
				unitPrice = product.Price
			}
			lineTotal := unitPrice * float64(item.Quantity)
			subtotal += lineTotal

			if err := Models.AdjustProductStock(tx, product.ID, -item.Quantity); err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update stock"})
			}

			items = append(items, Models.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
			})
		}

		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create items"})
		}

		updates["subtotal"] = subtotal
	}

	if len(input.Items) > 0 || input.Discount != nil {
		discount := sale.Discount
		if input.Discount != nil {
			discount = *input.Discount
		}
		updates["discount"] = discount
		updates["total_amount"] = subtotal - discount
	}

	if len(updates) > 0 {
		if err := tx.Model(&sale).Updates(updates).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update sale"})
		}
	}

	// The total may have changed, so the derived status and balance follow.
	if input.PaymentStatus == nil {
		if err := Models.SettleSalePaymentStatus(tx, sale.ID); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to settle payment status"})
		}
	}
	if err := Models.RecalculateCustomerBalance(tx, sale.CustomerID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer balance"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	c.DB.Preload("Customer").Preload("Items.Product").First(&sale, sale.ID)

	return ctx.JSON(fiber.Map{
		"message": "Sale updated successfully",
		"data":    sale,
	})
}
