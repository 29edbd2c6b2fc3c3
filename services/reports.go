package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ReportService renders documents: order invoices and the payments report
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// InvoicePDF renders the invoice of one of the vendor's orders
func (r *ReportService) InvoicePDF(ctx context.Context, vendorID, orderID uint) ([]byte, error) {
	var order models.Order
	err := withItem(r.db.WithContext(ctx)).
		Preload("Vendor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ? AND vendor_id = ?", orderID, vendorID).
		First(&order).Error
	if err != nil {
		return nil, storeError(err, "Order not found")
	}

	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		return nil, storeError(err, "Payment record not found")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, utils.AppName+" - Invoice")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice #INV-%06d", order.ID))
	pdf.Ln(6)
	pdf.Cell(0, 7, "Date: "+order.CreatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	if order.Vendor != nil {
		pdf.Cell(0, 7, "Billed to: "+order.Vendor.Name+" <"+order.Vendor.Email+">")
		pdf.Ln(6)
		if order.Vendor.Location != "" {
			pdf.Cell(0, 7, order.Vendor.Location)
			pdf.Ln(6)
		}
	}
	pdf.Ln(6)

	headers := []string{"Coconut", "Quantity", "Rate", "Total"}
	widths := []float64{80, 30, 35, 35}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	item := "Coconut"
	if order.CatalogItem != nil {
		item = order.CatalogItem.Descriptor()
	}
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(widths[0], 8, item, "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", order.Quantity), "1", 0, "C", false, 0, "")
	pdf.CellFormat(widths[2], 8, fmt.Sprintf("%.2f", order.Rate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, fmt.Sprintf("%.2f", order.TotalPrice), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.Ln(6)

	summary := [][2]string{
		{"Order status", order.Status},
		{"Payment method", payment.PaymentMethod},
		{"Payment status", payment.Status},
		{"Amount paid", fmt.Sprintf("%.2f", payment.AmountPaid)},
		{"Amount due", fmt.Sprintf("%.2f", payment.AmountDue)},
	}
	pdf.SetFont("Arial", "", 11)
	for _, line := range summary {
		pdf.CellFormat(50, 8, line[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, line[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, utils.UnexpectedError("Failed to render invoice", err)
	}
	utils.LogDebug("Rendered invoice for order %d (%d bytes)", order.ID, buf.Len())
	return buf.Bytes(), nil
}

// PaymentsXLSX renders every payment as a spreadsheet
func (r *ReportService) PaymentsXLSX(ctx context.Context, generatedAt time.Time) ([]byte, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Vendor", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, storeError(err, "")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		return nil, utils.UnexpectedError("Failed to create Excel sheet", err)
	}

	title := sheet.AddRow()
	title.AddCell().SetString(utils.AppName + " payments report")
	title.AddCell().SetString(generatedAt.Format("2006-01-02 15:04"))
	sheet.AddRow()

	headers := []string{"Payment ID", "Order ID", "Vendor", "Method", "Status", "Amount Paid", "Amount Due", "Gateway Payment"}
	headerRow := sheet.AddRow()
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}

	var paid, due float64
	for _, p := range payments {
		vendor := ""
		if p.Vendor != nil {
			vendor = p.Vendor.Name
		}
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetInt(int(p.OrderID))
		row.AddCell().SetString(vendor)
		row.AddCell().SetString(p.PaymentMethod)
		row.AddCell().SetString(p.Status)
		row.AddCell().SetFloat(p.AmountPaid)
		row.AddCell().SetFloat(p.AmountDue)
		row.AddCell().SetString(p.GatewayPaymentID)
		paid += p.AmountPaid
		due += p.AmountDue
	}

	sheet.AddRow()
	totals := sheet.AddRow()
	totals.AddCell().SetString("Totals")
	for i := 0; i < 4; i++ {
		totals.AddCell()
	}
	totals.AddCell().SetFloat(utils.RoundMoney(paid))
	totals.AddCell().SetFloat(utils.RoundMoney(due))

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, utils.UnexpectedError("Failed to write Excel file", err)
	}
	utils.LogDebug("Rendered payments report with %d rows", len(payments))
	return buf.Bytes(), nil
}
