package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"tailorpos/internal/repository"
)

// OrdersSheet is the worksheet name of the orders export
const OrdersSheet = "Orders"

var exportHeader = []string{
	"Order ID", "Order Date", "Delivery Date", "Status", "Customer", "Phone",
	"Garment", "Quantity", "Unit Price", "Total", "Deposit", "Remaining",
}

// ExportService writes the order book as a spreadsheet
type ExportService struct {
	mu        *sync.Mutex
	orders    repository.OrderRepository
	customers repository.CustomerRepository
}

func NewExportService(mu *sync.Mutex, orders repository.OrderRepository, customers repository.CustomerRepository) *ExportService {
	return &ExportService{mu: mu, orders: orders, customers: customers}
}

// ExportOrdersXLSX returns an XLSX workbook with one row per order in stored order
func (s *ExportService) ExportOrdersXLSX(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	orders, err := s.orders.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	customers, err := s.customers.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	byID := indexCustomers(customers)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(OrdersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(OrdersSheet, cell, v)
	}

	for r, o := range orders {
		row := r + 2
		fin := ComputeFinancials(o.Details, o.Payment)

		customerName, customerPhone := UnknownCustomerName, ""
		if c, ok := byID[o.CustomerID]; ok {
			customerName, customerPhone = c.Name, c.Phone
		}

		values := []any{
			o.ID,
			o.OrderDate,
			o.DeliveryDate,
			string(o.Status),
			customerName,
			customerPhone,
			o.GarmentDescription(),
			o.Details.Quantity,
			o.Details.PricePerThobe.Decimal().InexactFloat64(),
			fin.TotalAmount.Decimal().InexactFloat64(),
			o.Payment.Deposit.Decimal().InexactFloat64(),
			fin.Remaining.Decimal().InexactFloat64(),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(OrdersSheet, cell, v)
		}
	}

	_ = f.SetColWidth(OrdersSheet, "A", "A", 10)
	_ = f.SetColWidth(OrdersSheet, "B", "C", 14)
	_ = f.SetColWidth(OrdersSheet, "D", "D", 18)
	_ = f.SetColWidth(OrdersSheet, "E", "E", 24)
	_ = f.SetColWidth(OrdersSheet, "F", "F", 14)
	_ = f.SetColWidth(OrdersSheet, "G", "G", 44)
	_ = f.SetColWidth(OrdersSheet, "H", "L", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(OrdersSheet, "A1", "L1", headerStyle)

	if len(orders) > 0 {
		moneyFormat := "#,##0.00"
		moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
		last, _ := excelize.CoordinatesToCellName(12, len(orders)+1)
		_ = f.SetCellStyle(OrdersSheet, "I2", last, moneyStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
