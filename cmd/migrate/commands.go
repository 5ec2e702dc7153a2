package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"go.uber.org/zap"

	"tailorpos/internal/models"
	"tailorpos/internal/repository"
	"tailorpos/internal/service"
	"tailorpos/internal/store"
)

// entryLister is implemented by the SQL backends
type entryLister interface {
	Entries(ctx context.Context) ([]store.Entry, error)
}

// runUp loads every stored collection and saves it back, so legacy unversioned
// values are rewritten in the current envelope. Absent keys are left absent.
func runUp(ctx context.Context, kv store.Store) error {
	orders := repository.NewOrderRepository(kv)
	customers := repository.NewCustomerRepository(kv)
	settings := repository.NewSettingsRepository(kv)

	upgraded := 0

	if present, err := keyExists(ctx, kv, repository.CustomersKey); err != nil {
		return err
	} else if present {
		list, err := customers.Load(ctx)
		if err != nil {
			return err
		}
		if err := customers.Save(ctx, list); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("✓ %s: %d customers", repository.CustomersKey, len(list)))
		upgraded++

		highest := int64(0)
		for _, c := range list {
			if c.ID > highest {
				highest = c.ID
			}
		}
		if err := repository.NewCustomerSequence(kv).Advance(ctx, highest); err != nil {
			return err
		}
	}

	if present, err := keyExists(ctx, kv, repository.OrdersKey); err != nil {
		return err
	} else if present {
		list, err := orders.Load(ctx)
		if err != nil {
			return err
		}
		if err := orders.Save(ctx, list); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("✓ %s: %d orders", repository.OrdersKey, len(list)))
		upgraded++
	}

	if present, err := keyExists(ctx, kv, repository.SettingsKey); err != nil {
		return err
	} else if present {
		current, err := settings.Load(ctx)
		if err != nil {
			return err
		}
		if err := settings.Save(ctx, current); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("✓ %s", repository.SettingsKey))
		upgraded++
	}

	if upgraded == 0 {
		printWarning("No stored collections, nothing to rewrite")
	}
	return nil
}

func keyExists(ctx context.Context, kv store.Store, key string) (bool, error) {
	_, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// showStatus prints what is stored under each key
func showStatus(ctx context.Context, kv store.Store) error {
	printInfo("Collections:")
	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Printf("%-26s %-10s %s\n", "KEY", "STATE", "RECORDS")
	fmt.Println("─────────────────────────────────────────────────────────────")

	customers, err := repository.NewCustomerRepository(kv).Load(ctx)
	printCollection(repository.CustomersKey, len(customers), err)

	orders, err := repository.NewOrderRepository(kv).Load(ctx)
	printCollection(repository.OrdersKey, len(orders), err)

	seq, err := repository.NewCustomerSequence(kv).Current(ctx)
	if err != nil {
		fmt.Printf("%-26s %s%-10s%s %v\n", repository.CustomerSeqKey, colorRed, "ERROR", colorReset, err)
	} else {
		fmt.Printf("%-26s %s%-10s%s last id %d\n", repository.CustomerSeqKey, colorGreen, "OK", colorReset, seq)
	}
	fmt.Println("─────────────────────────────────────────────────────────────")

	lister, ok := kv.(entryLister)
	if !ok {
		return nil
	}

	entries, err := lister.Entries(ctx)
	if err != nil {
		return err
	}

	printInfo("\nRaw entries:")
	for _, e := range entries {
		fmt.Printf("  %s%-26s%s %8d bytes  updated %s\n", colorBold, e.Key, colorReset, e.Size, e.UpdatedAt)
	}
	return nil
}

func printCollection(key string, count int, err error) {
	var corrupt *repository.CorruptDataError
	switch {
	case errors.As(err, &corrupt):
		fmt.Printf("%-26s %s%-10s%s %v\n", key, colorRed, "CORRUPT", colorReset, corrupt.Err)
	case err != nil:
		fmt.Printf("%-26s %s%-10s%s %v\n", key, colorRed, "ERROR", colorReset, err)
	default:
		fmt.Printf("%-26s %s%-10s%s %d\n", key, colorGreen, "OK", colorReset, count)
	}
}

// runImport loads a dump of the browser storage keys from path
func runImport(ctx context.Context, kv store.Store, path string) error {
	dump, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dump: %w", err)
	}

	printInfo(fmt.Sprintf("Importing %s...", path))
	result, err := repository.NewImporter(kv).Import(ctx, dump)
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("✓ Customers imported: %d", result.Customers))
	printSuccess(fmt.Sprintf("✓ Orders imported: %d", result.Orders))
	if result.Settings {
		printSuccess("✓ Settings imported")
	}
	printInfo(fmt.Sprintf("Customer ids continue after %d", result.LastCustomerID))
	return nil
}

var (
	seedFirstNames = []string{"Ahmed", "Mohammed", "Abdullah", "Faisal", "Khalid", "Omar", "Saud", "Turki", "Nasser", "Yousef", "Fahad", "Sultan"}
	seedLastNames  = []string{"Al-Harbi", "Al-Otaibi", "Al-Qahtani", "Al-Ghamdi", "Al-Dosari", "Al-Shehri", "Al-Zahrani", "Al-Mutairi"}
	seedColors     = []string{"White", "Off-white", "Cream", "Light grey", "Navy", "Brown"}
	seedButtons    = []string{"Plain", "Pearl buttons", "Gold studs", "Hidden placket"}
)

// runSeed inserts generated customers with one order each through the services,
// so seeded data follows the same reconciliation and id rules as the API
func runSeed(ctx context.Context, kv store.Store, count int, clear bool, seed int64) error {
	orders := repository.NewOrderRepository(kv)
	customers := repository.NewCustomerRepository(kv)
	sequence := repository.NewCustomerSequence(kv)

	if clear {
		printWarning("Clearing orders and customers...")
		if err := orders.Save(ctx, nil); err != nil {
			return err
		}
		if err := customers.Save(ctx, nil); err != nil {
			return err
		}
		printSuccess("✓ Collections cleared\n")
	}

	mu := &sync.Mutex{}
	orderSvc := service.NewOrderService(mu, orders, customers, sequence, nil, zap.NewNop())

	rng := rand.New(rand.NewSource(seed))
	printInfo(fmt.Sprintf("Seeding %d customers with orders...", count))

	created := 0
	for i := 1; i <= count; i++ {
		req, status := seedOrder(rng, i)
		result, err := orderSvc.SaveOrder(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to seed order %d: %w", i, err)
		}
		if result.CustomerCreated {
			created++
		}
		// new orders always start as New Order; move them along afterwards
		if _, err := orderSvc.UpdateStatus(ctx, result.Order.ID, status); err != nil {
			return fmt.Errorf("failed to set status of seeded order %d: %w", i, err)
		}
	}

	printInfo("\n=== Seeding Summary ===")
	printSuccess(fmt.Sprintf("✓ Customers created: %d", created))
	printSuccess(fmt.Sprintf("✓ Orders created: %d", count))
	return nil
}

func seedOrder(rng *rand.Rand, i int) (*service.SaveOrderRequest, models.OrderStatus) {
	orderDate := fmt.Sprintf("2026-%02d-%02d", 1+rng.Intn(9), 1+rng.Intn(28))
	quantity := 1 + rng.Intn(4)
	price := models.NewMoney(int64(120+10*rng.Intn(15)), 0)
	status := models.OrderStatuses[rng.Intn(len(models.OrderStatuses))]

	return &service.SaveOrderRequest{
		OrderDate: orderDate,
		Details: models.OrderDetails{
			Fabric:        models.Fabrics[rng.Intn(len(models.Fabrics))],
			Color:         seedColors[rng.Intn(len(seedColors))],
			Collar:        models.Collars[rng.Intn(len(models.Collars))],
			Cuffs:         models.Cuffs[rng.Intn(len(models.Cuffs))],
			Pockets:       models.Pockets[rng.Intn(len(models.Pockets))],
			Stitching:     models.Stitchings[rng.Intn(len(models.Stitchings))],
			Buttons:       seedButtons[rng.Intn(len(seedButtons))],
			Quantity:      quantity,
			PricePerThobe: price,
		},
		Measurements: models.Measurements{
			Length:    fmt.Sprintf("%d", 54+rng.Intn(8)),
			Shoulders: fmt.Sprintf("%d", 17+rng.Intn(4)),
			Chest:     fmt.Sprintf("%d", 40+rng.Intn(8)),
			Neck:      fmt.Sprintf("%d", 15+rng.Intn(3)),
		},
		Payment: models.Payment{
			Deposit:       models.NewMoney(int64(50*rng.Intn(4)), 0),
			PaymentMethod: models.DefaultPaymentMethod,
		},
		Customer: service.CustomerDescriptor{
			Name: fmt.Sprintf("%s %s",
				seedFirstNames[rng.Intn(len(seedFirstNames))],
				seedLastNames[rng.Intn(len(seedLastNames))]),
			Phone: fmt.Sprintf("05000001%02d", i%100),
		},
	}, status
}
