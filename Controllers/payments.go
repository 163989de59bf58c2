package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// PaymentController handles payment API endpoints
type PaymentController struct {
	DB *gorm.DB
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

type CreatePaymentInput struct {
	SaleID    uint    `json:"sale_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=cash credit_card bank_transfer check"`
	Date      string  `json:"date"`
	Reference string  `json:"reference"`
}

// GetPayments retrieves all payments
func (c *PaymentController) GetPayments(ctx *fiber.Ctx) error {
	var payments []Models.Payment
	if result := c.DB.Preload("Sale").Order("date DESC, id DESC").Find(&payments); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

// GetSalePayments retrieves all payments recorded against a sale
func (c *PaymentController) GetSalePayments(ctx *fiber.Ctx) error {
	saleID, err := strconv.Atoi(ctx.Params("sale_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	// Verify sale exists
	var sale Models.Sale
	if result := c.DB.First(&sale, saleID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	var payments []Models.Payment
	if result := c.DB.Where("sale_id = ?", saleID).Order("date").Find(&payments); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

// CreatePayment records a payment against a sale, re-derives the sale's
// payment status and recomputes the customer balance in one transaction.
func (c *PaymentController) CreatePayment(ctx *fiber.Ctx) error {
	var input CreatePaymentInput
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

	var sale Models.Sale
	if result := c.DB.First(&sale, input.SaleID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sale not found"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	payment := Models.Payment{
		SaleID:      sale.ID,
		Amount:      input.Amount,
		Method:      Models.PaymentMethod(input.Method),
		Date:        date,
		Reference:   input.Reference,
		CreatedByID: actingUserID(ctx),
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	if err := Models.SettleSalePaymentStatus(tx, sale.ID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to settle payment status"})
	}

	if err := Models.RecalculateCustomerBalance(tx, sale.CustomerID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer balance"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	c.DB.First(&sale, sale.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Payment recorded successfully",
		"data":        payment,
		"sale_status": sale.PaymentStatus,
	})
}
