package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/notify"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/sequence"
)

type Outcome string

const (
	OutcomeFinalized    Outcome = "finalized"
	OutcomeCartNotFound Outcome = "cart_not_found"
	OutcomeCartEmpty    Outcome = "cart_empty"
)

type Result struct {
	Outcome Outcome          `json:"outcome"`
	Order   *Order           `json:"order,omitempty"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
}

type CartStore interface {
	LockByCustomerWithTx(ctx context.Context, tx *sql.Tx, customerID int64) (*cart.Cart, error)
	ClearItemsWithTx(ctx context.Context, tx *sql.Tx, cartID int64, itemIDs []int64) error
}

type CustomerFinder interface {
	Get(ctx context.Context, id int64) (*customer.Customer, error)
}

type InvoiceIssuer interface {
	IssueWithTx(ctx context.Context, tx *sql.Tx, src invoice.Source) (*invoice.Invoice, error)
	Render(inv *invoice.Invoice) error
}

type Pricer interface {
	Price(subtotal decimal.Decimal) pricing.Breakdown
}

type Deps struct {
	DB        db.TxBeginner
	Orders    Repository
	Carts     CartStore
	Customers CustomerFinder
	Invoices  InvoiceIssuer
	Sequences sequence.Repository
	Pricer    Pricer
	Notifier  notify.Sink
	Logger    *zap.Logger
	Now       func() time.Time
}

// Finalizer turns a customer's cart into an order and its invoice.
type Finalizer struct {
	Deps
}

func NewFinalizer(d Deps) *Finalizer {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Finalizer{Deps: d}
}

// Finalize snapshots the cart into a Pending order, issues the invoice and
// removes the ordered lines from the cart in a single transaction. The cart
// is read under its row lock, so concurrent finalizations and cart edits for
// the same customer wait for this one. Rendering and notifications run after
// commit and their failures are only logged.
func (f *Finalizer) Finalize(ctx context.Context, customerID int64) (*Result, error) {
	var (
		outcome = OutcomeFinalized
		o       *Order
		inv     *invoice.Invoice
	)
	err := db.WithTx(ctx, f.DB, func(tx *sql.Tx) error {
		c, err := f.Carts.LockByCustomerWithTx(ctx, tx, customerID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if c == nil {
			outcome = OutcomeCartNotFound
			return nil
		}
		if c.Empty() {
			outcome = OutcomeCartEmpty
			return nil
		}

		now := f.Now()
		o = f.snapshot(customerID, c, now)

		n, err := f.Sequences.NextWithTx(ctx, tx, sequence.PartitionKey(sequence.OrderPrefix, now))
		if err != nil {
			return err
		}
		o.Number = sequence.Format(sequence.OrderPrefix, now, n)

		if err := f.Orders.CreateWithTx(ctx, tx, o); err != nil {
			return err
		}

		inv, err = f.Invoices.IssueWithTx(ctx, tx, invoice.Source{
			OrderID:     o.ID,
			OrderNumber: o.Number,
			Tax:         o.Tax,
			Total:       o.Total,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}

		itemIDs := make([]int64, 0, len(c.Items))
		for _, line := range c.Items {
			itemIDs = append(itemIDs, line.ID)
		}
		return f.Carts.ClearItemsWithTx(ctx, tx, c.ID, itemIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("finalize order for customer %d: %w", customerID, err)
	}
	if outcome != OutcomeFinalized {
		return &Result{Outcome: outcome}, nil
	}

	f.afterCommit(ctx, o, inv)

	f.Logger.Info("order processed",
		zap.String("order_number", o.Number),
		zap.String("invoice_number", inv.Number),
		zap.Int64("customer_id", customerID),
	)
	return &Result{Outcome: OutcomeFinalized, Order: o, Invoice: inv}, nil
}

func (f *Finalizer) snapshot(customerID int64, c *cart.Cart, now time.Time) *Order {
	price := f.Pricer.Price(c.Total())

	o := &Order{
		CustomerID: customerID,
		CartID:     c.ID,
		Status:     StatusPending,
		Subtotal:   price.Subtotal,
		Tax:        price.Tax,
		Shipping:   price.Shipping,
		Total:      price.Total,
		CreatedAt:  now,
		Items:      make([]Item, 0, len(c.Items)),
	}
	for _, line := range c.Items {
		o.Items = append(o.Items, Item{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
		})
	}
	return o
}

func (f *Finalizer) afterCommit(ctx context.Context, o *Order, inv *invoice.Invoice) {
	if err := f.Invoices.Render(inv); err != nil {
		f.Logger.Warn("render invoice failed", zap.String("invoice_number", inv.Number), zap.Error(err))
	}

	if f.Notifier == nil {
		return
	}

	ev := notify.OrderPlaced{
		OrderID:       o.ID,
		OrderNumber:   o.Number,
		CustomerID:    o.CustomerID,
		InvoiceNumber: inv.Number,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Total:         o.Total,
		PlacedAt:      o.CreatedAt,
	}
	cust, err := f.Customers.Get(ctx, o.CustomerID)
	if err != nil {
		f.Logger.Warn("load customer for notification failed", zap.Int64("customer_id", o.CustomerID), zap.Error(err))
	} else if cust != nil {
		ev.Email = cust.Email
	}

	if err := f.Notifier.OrderPlaced(ctx, ev); err != nil {
		f.Logger.Warn("order notification failed", zap.String("order_number", o.Number), zap.Error(err))
	}
}
