package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Pigment/Models"
)

// ReportController handles spreadsheet exports for the accountant
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ExportSalesReport streams an Excel workbook of all sales in the requested
// date range (defaults to the current month).
func (c *ReportController) ExportSalesReport(ctx *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	if s := ctx.Query("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be in YYYY-MM-DD format"})
		}
		start = parsed
	}
	if e := ctx.Query("end_date"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be in YYYY-MM-DD format"})
		}
		end = parsed.AddDate(0, 0, 1)
	}

	var sales []Models.Sale
	result := c.DB.Preload("Customer").
		Where("date >= ? AND date < ?", start, end).
		Order("date").
		Find(&sales)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}

	f := excelize.NewFile()

	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create sheet"})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Invoice Number", "Date", "Customer", "Subtotal", "Discount",
		"Total", "Payment Method", "Payment Status", "Notes",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, sale := range sales {
		row := rowIndex + 2 // data starts after the header row
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sale.InvoiceNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sale.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), sale.Customer.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), sale.Subtotal)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), sale.Discount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), sale.TotalAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(sale.PaymentMethod))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), string(sale.PaymentStatus))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), sale.Notes)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	filename := fmt.Sprintf("sales_report_%s.xlsx", time.Now().Format("20060102_150405"))

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	return ctx.Send(buffer.Bytes())
}
