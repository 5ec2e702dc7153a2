package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tailorpos/internal/models"
	"tailorpos/internal/store"
)

// legacyOrder is an order as written by the browser version. It embeds the customer
// descriptor from the form and may hold the quantity as a string.
type legacyOrder struct {
	models.Order
	Details  legacyDetails `json:"details"`
	Customer *struct {
		ID *int64 `json:"id"`
	} `json:"customer"`
}

type legacyDetails struct {
	models.OrderDetails
	Quantity legacyQuantity `json:"quantity"`
}

// legacyQuantity accepts a number, a numeric string, an empty string or null
type legacyQuantity int

func (q *legacyQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*q = 0
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %q", raw)
	}
	*q = legacyQuantity(math.Round(f))
	return nil
}

func (lo *legacyOrder) upgrade() *models.Order {
	order := lo.Order
	order.Details = lo.Details.OrderDetails
	order.Details.Quantity = int(lo.Details.Quantity)

	if order.CustomerID == 0 && lo.Customer != nil && lo.Customer.ID != nil {
		order.CustomerID = *lo.Customer.ID
	}

	return &order
}

// ImportResult summarizes a legacy import
type ImportResult struct {
	Customers      int
	Orders         int
	Settings       bool
	LastCustomerID int64
}

// Importer copies a dump of the browser storage into the store.
// The dump is a JSON object keyed by storage key; each value is either the stored
// JSON itself or the string the browser held it as.
type Importer struct {
	customers CustomerRepository
	orders    OrderRepository
	settings  SettingsRepository
	sequence  *Sequence
}

// NewImporter creates an importer writing through repositories on s
func NewImporter(s store.Store) *Importer {
	return &Importer{
		customers: NewCustomerRepository(s),
		orders:    NewOrderRepository(s),
		settings:  NewSettingsRepository(s),
		sequence:  NewCustomerSequence(s),
	}
}

// Import validates every collection in the dump before writing any of them.
// Collections absent from the dump are left untouched.
func (im *Importer) Import(ctx context.Context, dump []byte) (*ImportResult, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(dump, &entries); err != nil {
		return nil, fmt.Errorf("dump must be a JSON object keyed by storage key: %w", err)
	}

	var (
		customers []*models.Customer
		orders    []*models.Order
		settings  *models.ShopSettings
	)

	if doc, ok, err := dumpDocument(entries, CustomersKey); err != nil {
		return nil, err
	} else if ok {
		if customers, err = decodeCustomers(CustomersKey, doc.Data); err != nil {
			return nil, err
		}
	}

	if doc, ok, err := dumpDocument(entries, OrdersKey); err != nil {
		return nil, err
	} else if ok {
		if orders, err = decodeOrders(OrdersKey, doc); err != nil {
			return nil, err
		}
	}

	if doc, ok, err := dumpDocument(entries, SettingsKey); err != nil {
		return nil, err
	} else if ok {
		if settings, err = decodeSettings(SettingsKey, doc.Data); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}

	if customers != nil {
		if err := im.customers.Save(ctx, customers); err != nil {
			return nil, err
		}
		for _, c := range customers {
			if c.ID > result.LastCustomerID {
				result.LastCustomerID = c.ID
			}
		}
		if err := im.sequence.Advance(ctx, result.LastCustomerID); err != nil {
			return nil, err
		}
		result.Customers = len(customers)
	}

	if orders != nil {
		if err := im.orders.Save(ctx, orders); err != nil {
			return nil, err
		}
		result.Orders = len(orders)
	}

	if settings != nil {
		if err := im.settings.Save(ctx, settings); err != nil {
			return nil, err
		}
		result.Settings = true
	}

	return result, nil
}

func dumpDocument(entries map[string]json.RawMessage, key string) (document, bool, error) {
	raw, ok := entries[key]
	if !ok {
		return document{}, false, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return document{}, false, &CorruptDataError{Key: key, Err: err}
		}
		raw = []byte(inner)
	}

	return parseDocument(key, raw)
}
