package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// ProductController handles product catalog API endpoints
type ProductController struct {
	DB *gorm.DB
}

// NewProductController creates a new ProductController
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type ProductInput struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required,oneof=construction external_facades decorative"`
	Color    string  `json:"color"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock"`
}

// GetProducts retrieves all products, optionally filtered by category or name
func (c *ProductController) GetProducts(ctx *fiber.Ctx) error {
	query := c.DB

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := ctx.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var products []Models.Product
	if result := query.Order("name").Find(&products); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve products"})
	}

	return ctx.JSON(products)
}

// GetProduct retrieves a single product by ID
func (c *ProductController) GetProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return ctx.JSON(product)
}

// CreateProduct creates a new product
func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input ProductInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product := Models.Product{
		Name:     input.Name,
		Category: Models.ProductCategory(input.Category),
		Color:    input.Color,
		Price:    input.Price,
		Stock:    input.Stock,
	}

	if result := c.DB.Create(&product); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct merges the provided fields into an existing product
func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var input map[string]interface{}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	for _, key := range []string{"name", "category", "color", "price", "stock"} {
		if value, ok := input[key]; ok {
			updates[key] = value
		}
	}

	if len(updates) > 0 {
		if err := c.DB.Model(&product).Updates(updates).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
		}
	}

	return ctx.JSON(product)
}

// DeleteProduct removes a product from the catalog
func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	c.DB.Delete(&product)

	return ctx.JSON(fiber.Map{"message": "Product deleted successfully"})
}
