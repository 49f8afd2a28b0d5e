package storefront

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/notify"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/report"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/sequence"
)

// Components are the shared handles both entry points build a Storefront
// from.
type Components struct {
	Config   config.Config
	DB       *sql.DB
	Pool     inventory.DBPool
	Renderer invoice.Renderer
	Logger   *zap.Logger

	// Extra sinks beyond the email and audit sinks, e.g. a RabbitPublisher.
	Sinks []notify.Sink

	Now func() time.Time
}

// Pricing builds the calculator selected by configuration.
func Pricing(cfg config.Config) *pricing.Calculator {
	var shipping pricing.ShippingCalculator = pricing.FlatShipping{Fee: cfg.FlatShippingFee}
	if cfg.ShippingPolicy == config.ShippingTiered {
		shipping = pricing.TieredShipping{}
	}
	return pricing.NewCalculator(pricing.FlatRateTax{Rate: cfg.TaxRate}, shipping, pricing.DefaultDiscounts())
}

func Wire(c Components) *Storefront {
	products := catalog.NewRepository(c.DB)
	customers := customer.NewRepository(c.DB)
	carts := cart.NewRepository(c.DB)
	orders := order.NewRepository(c.DB)
	seq := sequence.NewRepository()
	invoices := invoice.NewService(invoice.NewRepository(c.DB), seq, c.Renderer, c.Config.InvoiceDueDays)
	calc := Pricing(c.Config)

	sinks := append([]notify.Sink{notify.NewEmailSink(c.Logger), notify.NewAuditSink(c.Logger)}, c.Sinks...)

	finalizer := order.NewFinalizer(order.Deps{
		DB:        c.DB,
		Orders:    orders,
		Carts:     carts,
		Customers: customers,
		Invoices:  invoices,
		Sequences: seq,
		Pricer:    calc,
		Notifier:  notify.NewFanout(c.Logger, sinks...),
		Logger:    c.Logger,
		Now:       c.Now,
	})

	return &Storefront{
		Catalog:   products,
		Customers: customers,
		Carts:     cart.NewService(c.DB, carts, customers, products, c.Logger),
		Finalizer: finalizer,
		Orders:    orders,
		Invoices:  invoices,
		Pricing:   calc,
		Payments:  payment.DefaultRegistry(c.Logger),
		Inventory: inventory.NewService(inventory.NewPostgresRepository(c.Pool), c.Logger),
		Reports:   report.NewService(report.NewRepository(c.DB)),
	}
}
