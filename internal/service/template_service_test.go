package service_test

import (
	"testing"

	"tailorpos/internal/models"
	"tailorpos/internal/service"
	"tailorpos/internal/testutil"
)

func TestTemplateService_Render(t *testing.T) {
	svc := service.NewTemplateService()
	settings := models.DefaultShopSettings()
	data := &service.TemplateData{
		Customer: testutil.NewTestCustomer(),
		Order:    testutil.NewTestOrder(14, 1),
		Settings: &settings,
	}

	testCases := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "default template",
			template: service.DefaultNotificationTemplate,
			expected: "Hello Ahmed Al-Harbi, your order #14 is ready for pickup at Sundus.",
		},
		{
			name:     "balance reminder",
			template: "Order {order_id}: {remaining} due. Call {shop_phone}.",
			expected: "Order 14: 190.00 SAR due. Call 0533205878.",
		},
		{
			name:     "unknown placeholder left as is",
			template: "Hi {nickname}",
			expected: "Hi {nickname}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rendered, err := svc.Render(tc.template, data)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, rendered, tc.expected)
		})
	}
}

func TestTemplateService_RenderErrors(t *testing.T) {
	svc := service.NewTemplateService()

	_, err := svc.Render("", &service.TemplateData{})
	testutil.AssertError(t, err, "template cannot be empty")

	_, err = svc.Render("Hello {name}", &service.TemplateData{Customer: testutil.NewTestCustomer()})
	testutil.AssertError(t, err, "template data is incomplete")
}

func TestTemplateService_ValidateTemplate(t *testing.T) {
	svc := service.NewTemplateService()

	testutil.AssertNoError(t, svc.ValidateTemplate(service.DefaultNotificationTemplate))
	testutil.AssertError(t, svc.ValidateTemplate("Hello {name"), "template has unbalanced braces: 1 open, 0 close")
	testutil.AssertError(t, svc.ValidateTemplate("Hello {first_name}"), "template has unknown placeholders: {first_name}")
	testutil.AssertError(t, svc.ValidateTemplate(""), "template cannot be empty")
}
