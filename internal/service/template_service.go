package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tailorpos/internal/models"
)

// DefaultNotificationTemplate is the pickup message sent to customers
const DefaultNotificationTemplate = "Hello {name}, your order #{order_id} is ready for pickup at {shop_name}."

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

// TemplateData is what notification placeholders are filled from
type TemplateData struct {
	Customer *models.Customer
	Order    *models.Order
	Settings *models.ShopSettings
}

// TemplateService handles message template rendering
type TemplateService struct{}

// NewTemplateService creates a new template service
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

func placeholderValues(data *TemplateData) map[string]string {
	fin := ComputeFinancials(data.Order.Details, data.Order.Payment)
	return map[string]string{
		"{name}":          data.Customer.Name,
		"{phone}":         data.Customer.Phone,
		"{order_id}":      strconv.FormatInt(data.Order.ID, 10),
		"{status}":        string(data.Order.Status),
		"{delivery_date}": data.Order.DeliveryDate,
		"{remaining}":     fin.Remaining.String() + " " + models.CurrencyCode,
		"{shop_name}":     data.Settings.ShopName,
		"{shop_phone}":    data.Settings.ShopPhone,
	}
}

// Render replaces {field_name} placeholders with values from data.
// Unknown placeholders are left in the text as they are.
func (s *TemplateService) Render(template string, data *TemplateData) (string, error) {
	if template == "" {
		return "", fmt.Errorf("template cannot be empty")
	}

	if data == nil || data.Customer == nil || data.Order == nil || data.Settings == nil {
		return "", fmt.Errorf("template data is incomplete")
	}

	values := placeholderValues(data)
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		if value, ok := values[placeholder]; ok {
			return value
		}
		return placeholder
	})

	return rendered, nil
}

// ValidateTemplate checks brace balance and rejects unknown placeholders
func (s *TemplateService) ValidateTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("template cannot be empty")
	}

	openCount := strings.Count(template, "{")
	closeCount := strings.Count(template, "}")

	if openCount != closeCount {
		return fmt.Errorf("template has unbalanced braces: %d open, %d close", openCount, closeCount)
	}

	known := placeholderValues(&TemplateData{
		Customer: &models.Customer{},
		Order:    &models.Order{},
		Settings: &models.ShopSettings{},
	})

	unknownFields := []string{}
	for _, placeholder := range s.GetPlaceholders(template) {
		if _, ok := known[placeholder]; !ok {
			unknownFields = append(unknownFields, placeholder)
		}
	}

	if len(unknownFields) > 0 {
		return fmt.Errorf("template has unknown placeholders: %s", strings.Join(unknownFields, ", "))
	}

	return nil
}

// GetPlaceholders extracts all placeholders from a template
func (s *TemplateService) GetPlaceholders(template string) []string {
	return placeholderPattern.FindAllString(template, -1)
}
