package repository

import (
	"context"

	"tailorpos/internal/models"
)

// Storage keys. The first three match the keys used by the browser version of the shop tool.
const (
	OrdersKey      = "thobe_pos_orders"
	CustomersKey   = "thobe_pos_customers"
	SettingsKey    = "thobe_pos_settings"
	CustomerSeqKey = "thobe_pos_customer_seq"
)

// CustomerRepository loads and saves the whole customer collection.
// Order is significant: new customers are inserted at the front.
type CustomerRepository interface {
	Load(ctx context.Context) ([]*models.Customer, error)
	Save(ctx context.Context, customers []*models.Customer) error
}

// OrderRepository loads and saves the whole order collection
type OrderRepository interface {
	Load(ctx context.Context) ([]*models.Order, error)
	Save(ctx context.Context, orders []*models.Order) error
}

// SettingsRepository loads and saves the shop settings singleton
type SettingsRepository interface {
	Load(ctx context.Context) (*models.ShopSettings, error)
	Save(ctx context.Context, settings *models.ShopSettings) error
}

// IDSequence hands out customer ids that are never reused
type IDSequence interface {
	Next(ctx context.Context, floor int64) (int64, error)
}
