package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
)

// UnknownCustomerName is printed when an order references a deleted customer
const UnknownCustomerName = "Unknown customer"

// Invoice is the printable projection of one order
type Invoice struct {
	Shop              models.ShopSettings `json:"shop"`
	OrderID           int64               `json:"orderId"`
	OrderDate         string              `json:"orderDate"`
	DeliveryDate      string              `json:"deliveryDate"`
	Status            models.OrderStatus  `json:"status"`
	Customer          InvoiceCustomer     `json:"customer"`
	Measurements      []models.Field      `json:"measurements"`
	LooseMeasurements []models.Field      `json:"looseMeasurements"`
	Lines             []InvoiceLine       `json:"lines"`
	Payment           models.Payment      `json:"payment"`
	Summary           Financials          `json:"summary"`
	Currency          string              `json:"currency"`
}

// InvoiceCustomer is the bill-to block
type InvoiceCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Known bool   `json:"known"`
}

// InvoiceLine is one row of the items table
type InvoiceLine struct {
	Description string       `json:"description"`
	Notes       string       `json:"notes"`
	Quantity    int          `json:"quantity"`
	UnitPrice   models.Money `json:"unitPrice"`
	Total       models.Money `json:"total"`
}

// InvoiceService builds invoices from stored orders
type InvoiceService struct {
	mu        *sync.Mutex
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	settings  repository.SettingsRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	mu *sync.Mutex,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	settings repository.SettingsRepository,
) *InvoiceService {
	return &InvoiceService{
		mu:        mu,
		orders:    orders,
		customers: customers,
		settings:  settings,
	}
}

// Build loads an order with its customer and the shop settings and projects the invoice
func (s *InvoiceService) Build(ctx context.Context, orderID int64) (*Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := findOrder(orders, orderID)
	if index < 0 {
		return nil, &NotFoundError{Resource: "order", ID: orderID}
	}
	order := orders[index]

	customers, err := s.customers.Load(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	return BuildInvoice(order, indexCustomers(customers)[order.CustomerID], settings), nil
}

// BuildInvoice projects an order into an invoice. customer may be nil.
func BuildInvoice(order *models.Order, customer *models.Customer, settings *models.ShopSettings) *Invoice {
	inv := &Invoice{
		Shop:              *settings,
		OrderID:           order.ID,
		OrderDate:         order.OrderDate,
		DeliveryDate:      order.DeliveryDate,
		Status:            order.Status,
		Customer:          InvoiceCustomer{Name: UnknownCustomerName},
		Measurements:      order.Measurements.Fields(),
		LooseMeasurements: order.LooseMeasurements.Fields(),
		Payment:           order.Payment,
		Summary:           ComputeFinancials(order.Details, order.Payment),
		Currency:          models.CurrencyCode,
	}

	if customer != nil {
		inv.Customer = InvoiceCustomer{Name: customer.Name, Phone: customer.Phone, Known: true}
	}

	inv.Lines = []InvoiceLine{{
		Description: order.GarmentDescription(),
		Notes:       order.Details.SpecialInstructions,
		Quantity:    order.Details.Quantity,
		UnitPrice:   order.Details.PricePerThobe,
		Total:       inv.Summary.FabricCost,
	}}

	return inv
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"date": displayDate,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice #{{.OrderID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #111; }
table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
th, td { padding: 0.4rem; border-bottom: 1px solid #ddd; text-align: left; }
.num { text-align: right; }
.summary { margin-left: auto; width: 20rem; }
.notes { font-size: 0.8rem; color: #666; }
</style>
</head>
<body>
<header>
<h1>{{.Shop.ShopName}}</h1>
<p>{{.Shop.ShopAddress}}</p>
<p>Phone: {{.Shop.ShopPhone}}</p>
<p>VAT Number: {{.Shop.VATNumber}}</p>
</header>
<section>
<h2>Invoice</h2>
<p>Order Number: {{.OrderID}}</p>
<p>Order Date: {{date .OrderDate}}</p>
{{- if .DeliveryDate}}
<p>Delivery Date: {{date .DeliveryDate}}</p>
{{- end}}
</section>
<section>
<h3>Bill To:</h3>
<p><strong>{{.Customer.Name}}</strong></p>
{{- if .Customer.Phone}}
<p>Phone: {{.Customer.Phone}}</p>
{{- end}}
</section>
<section>
<h3>Measurements:</h3>
<table>
{{- range .Measurements}}
<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
</section>
<table>
<thead><tr><th>Description</th><th class="num">Quantity</th><th class="num">Unit Price</th><th class="num">Total</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr>
<td>{{.Description}}{{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}</td>
<td class="num">{{.Quantity}}</td>
<td class="num">{{.UnitPrice}}</td>
<td class="num">{{.Total}}</td>
</tr>
{{- end}}
</tbody>
</table>
<table class="summary">
<tr><td>Subtotal</td><td class="num">{{.Summary.SubTotal}} {{.Currency}}</td></tr>
<tr><td>Extra</td><td class="num">{{.Payment.Extra}} {{.Currency}}</td></tr>
<tr><td>Discount</td><td class="num">{{.Payment.Discount}} {{.Currency}}</td></tr>
<tr><th>Total Amount</th><th class="num">{{.Summary.TotalAmount}} {{.Currency}}</th></tr>
<tr><td>Deposit</td><td class="num">{{.Payment.Deposit}} {{.Currency}}</td></tr>
<tr><th>Remaining</th><th class="num">{{.Summary.Remaining}} {{.Currency}}</th></tr>
</table>
<p>Payment Method: {{.Payment.PaymentMethod}}</p>
<footer><p>Thank you for your business!</p></footer>
</body>
</html>
`))

// RenderHTML writes the invoice as a printable HTML document
func (inv *Invoice) RenderHTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, inv); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// displayDate formats YYYY-MM-DD as DD/MM/YYYY, leaving unparseable values as they are
func displayDate(value string) string {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}
