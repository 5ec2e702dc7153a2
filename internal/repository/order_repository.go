package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tailorpos/internal/models"
	"tailorpos/internal/store"
)

type orderRepository struct {
	store store.Store
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(s store.Store) OrderRepository {
	return &orderRepository{store: s}
}

// Load returns every order in stored order, or an empty slice when none were saved.
// Unknown status or catalog values make the whole collection corrupt.
func (r *orderRepository) Load(ctx context.Context) ([]*models.Order, error) {
	doc, found, err := readDocument(ctx, r.store, OrdersKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*models.Order{}, nil
	}

	return decodeOrders(OrdersKey, doc)
}

// Save overwrites the order collection
func (r *orderRepository) Save(ctx context.Context, orders []*models.Order) error {
	if orders == nil {
		orders = []*models.Order{}
	}
	return writeDocument(ctx, r.store, OrdersKey, orders)
}

func decodeOrders(key string, doc document) ([]*models.Order, error) {
	var orders []*models.Order

	if doc.Version == 0 {
		var legacy []*legacyOrder
		if err := json.Unmarshal(doc.Data, &legacy); err != nil {
			return nil, &CorruptDataError{Key: key, Err: err}
		}
		for _, lo := range legacy {
			if lo != nil {
				orders = append(orders, lo.upgrade())
			}
		}
	} else {
		if err := json.Unmarshal(doc.Data, &orders); err != nil {
			return nil, &CorruptDataError{Key: key, Err: err}
		}
	}

	out := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if err := o.ValidateCatalog(); err != nil {
			return nil, &CorruptDataError{Key: key, Err: fmt.Errorf("order %d: %w", o.ID, err)}
		}
		out = append(out, o)
	}

	return out, nil
}
