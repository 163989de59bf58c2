package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// ReturnController handles goods-return API endpoints
type ReturnController struct {
	DB *gorm.DB
}

// NewReturnController creates a new ReturnController
func NewReturnController(db *gorm.DB) *ReturnController {
	return &ReturnController{DB: db}
}

type CreateReturnInput struct {
	SaleID uint            `json:"sale_id" validate:"required"`
	Date   string          `json:"date"`
	Reason string          `json:"reason"`
	Items  []SaleItemInput `json:"items" validate:"required,min=1,dive"`
}

// GetReturns retrieves all returns, optionally filtered by customer
func (c *ReturnController) GetReturns(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Customer").Preload("Items.Product")

	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var returns []Models.Return
	if result := query.Order("date DESC, id DESC").Find(&returns); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve returns"})
	}

	return ctx.JSON(returns)
}

// GetReturn retrieves a single return by ID
func (c *ReturnController) GetReturn(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid return ID"})
	}

	var ret Models.Return
	result := c.DB.Preload("Customer").Preload("Sale").Preload("Items.Product").First(&ret, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Return not found"})
	}

	return ctx.JSON(ret)
}

// CreateReturn records a goods return against a sale: assigns the RET
// number, restocks the returned quantities and recomputes the customer
// balance, all in one transaction.
func (c *ReturnController) CreateReturn(ctx *fiber.Ctx) error {
	var input CreateReturnInput
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

	var total float64
	var items []Models.ReturnItem

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
		total += lineTotal

		if err := Models.AdjustProductStock(tx, product.ID, item.Quantity); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update stock"})
		}

		items = append(items, Models.ReturnItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	returnNumber, err := Models.NextDocumentNumber(tx, "RET", date)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign return number"})
	}

	ret := Models.Return{
		ReturnNumber: returnNumber,
		SaleID:       sale.ID,
		CustomerID:   sale.CustomerID,
		Date:         date,
		TotalAmount:  total,
		Reason:       input.Reason,
		CreatedByID:  actingUserID(ctx),
		Items:        items,
	}

	if err := tx.Create(&ret).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create return"})
	}

	if err := Models.RecalculateCustomerBalance(tx, sale.CustomerID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer balance"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	c.DB.Preload("Customer").Preload("Items.Product").First(&ret, ret.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Return created successfully",
		"data":    ret,
	})
}
