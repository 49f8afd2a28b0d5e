// Command storefront-demo runs one checkout against the configured database
// and prints each step.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/render"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = middleware.WithCorrelationID(ctx, uuid.NewString())

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	out := render.NewText(os.Stdout)
	sf := storefront.Wire(storefront.Components{
		Config:   cfg,
		DB:       sqlDB,
		Pool:     pool,
		Renderer: out,
		Logger:   logger,
		Now:      time.Now,
	})

	products, err := sf.ListProducts(ctx)
	if err != nil {
		return err
	}
	if err := out.RenderProducts(products); err != nil {
		return err
	}

	// Fresh address per run; email is unique.
	email := fmt.Sprintf("john.doe+%s@example.com", uuid.NewString()[:8])
	first, last, phone, addr := "John", "Doe", "555-0100", "123 Main St"
	customerID, err := sf.CreateCustomer(ctx, customer.Input{
		Email: &email, FirstName: &first, LastName: &last, Phone: &phone, Address: &addr,
	})
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	if _, err := sf.CreateCart(ctx, customerID); err != nil {
		return fmt.Errorf("create cart: %w", err)
	}
	for _, line := range []struct {
		productID int64
		qty       int
	}{{1, 2}, {2, 1}} {
		outcome, err := sf.AddToCart(ctx, customerID, line.productID, line.qty)
		if err != nil {
			return fmt.Errorf("add product %d: %w", line.productID, err)
		}
		logger.Info("add to cart", zap.Int64("product_id", line.productID), zap.String("outcome", string(outcome)))
	}

	c, err := sf.GetCart(ctx, customerID)
	if err != nil {
		return err
	}
	if err := out.RenderCart(customerID, c); err != nil {
		return err
	}

	res, err := sf.PlaceOrder(ctx, customerID)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	if res.Outcome != order.OutcomeFinalized {
		fmt.Printf("Order not placed: %s\n", res.Outcome)
	} else {
		fmt.Printf("Order placed: %s\n", res.Order.Number)
	}

	rep, err := sf.SalesReport(ctx)
	if err != nil {
		return err
	}
	return out.RenderSalesReport(rep)
}
