package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// CustomerController handles customer-related API endpoints
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type CustomerInput struct {
	Name     string  `json:"name" validate:"required"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Type     string  `json:"type" validate:"omitempty,oneof=institution store individual"`
	Discount float64 `json:"discount" validate:"gte=0,lte=100"`
}

// GetCustomers retrieves all customers, optionally filtered by name or type
func (c *CustomerController) GetCustomers(ctx *fiber.Ctx) error {
	query := c.DB

	if q := ctx.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if t := ctx.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var customers []Models.Customer
	if result := query.Order("name").Find(&customers); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}

	return ctx.JSON(customers)
}

// GetCustomer retrieves a single customer by ID
func (c *CustomerController) GetCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return ctx.JSON(customer)
}

// CreateCustomer creates a new customer
func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input CustomerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	customerType := Models.CustomerType(input.Type)
	if customerType == "" {
		customerType = Models.CustomerIndividual
	}

	customer := Models.Customer{
		Name:     input.Name,
		Phone:    input.Phone,
		Address:  input.Address,
		Type:     customerType,
		Discount: input.Discount,
	}

	if result := c.DB.Create(&customer); result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A customer with this name already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer merges the provided fields into an existing customer
func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	// Partial update: only the keys present in the body are written, so a
	// discount of 0 is still an update rather than "field not sent".
	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	for _, key := range []string{"name", "phone", "address", "type", "discount"} {
		if value, ok := input[key]; ok {
			updates[key] = value
		}
	}

	if len(updates) > 0 {
		if err := c.DB.Model(&customer).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
		}
	}

	return ctx.JSON(customer)
}

// DeleteCustomer removes a customer. Existing sales keep their customer_id;
// reads resolve the missing association to a zero value instead of failing.
func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	c.DB.Delete(&customer)

	return ctx.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

// GetCustomerBalance returns the stored derived balance for a customer
func (c *CustomerController) GetCustomerBalance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var balance Models.CustomerBalance
	if result := c.DB.Where("customer_id = ?", id).First(&balance); result.Error != nil {
		// No recorded activity yet: report a zero balance instead of 404,
		// the customer itself does exist.
		balance = Models.CustomerBalance{CustomerID: uint(id)}
	}

	return ctx.JSON(balance)
}
