package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/report"
)

var ErrOrderNotFound = errors.New("order not found")

type CartService interface {
	CreateCart(ctx context.Context, customerID int64) (int64, error)
	GetCart(ctx context.Context, customerID int64) (*cart.Cart, error)
	AddToCart(ctx context.Context, customerID, productID int64, quantity int) (cart.AddOutcome, error)
	RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error)
	CartTotal(ctx context.Context, customerID int64) (decimal.Decimal, error)
}

type OrderFinalizer interface {
	Finalize(ctx context.Context, customerID int64) (*order.Result, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]order.Order, error)
}

type InvoiceService interface {
	GetByOrder(ctx context.Context, orderID int64) (*invoice.Invoice, error)
	MarkPaid(ctx context.Context, orderID int64) error
	Reopen(ctx context.Context, orderID int64) error
}

type Quoter interface {
	Quote(subtotal decimal.Decimal, code string) pricing.Quote
}

type PaymentProcessor interface {
	Process(ctx context.Context, method payment.Method, c payment.Charge) (payment.Receipt, error)
}

type StockService interface {
	Stock(ctx context.Context, productID int64) (inventory.StockItem, error)
	UpdateStock(ctx context.Context, productID int64, available int) error
}

type SalesReporter interface {
	Sales(ctx context.Context) (report.SalesReport, error)
}

// Storefront composes the workflow capabilities. Each method delegates to
// the capability that owns the rule.
type Storefront struct {
	Catalog   catalog.Repository
	Customers customer.Repository
	Carts     CartService
	Finalizer OrderFinalizer
	Orders    OrderReader
	Invoices  InvoiceService
	Pricing   Quoter
	Payments  PaymentProcessor
	Inventory StockService
	Reports   SalesReporter
}

func (s *Storefront) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.Catalog.List(ctx)
}

func (s *Storefront) CreateCustomer(ctx context.Context, c customer.Input) (int64, error) {
	return s.Customers.Create(ctx, c)
}

func (s *Storefront) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.Customers.Get(ctx, id)
}

func (s *Storefront) UpdateCustomer(ctx context.Context, id int64, c customer.Input) (bool, error) {
	return s.Customers.Update(ctx, id, c)
}

func (s *Storefront) DeleteCustomer(ctx context.Context, id int64) error {
	return s.Customers.Delete(ctx, id)
}

func (s *Storefront) CreateCart(ctx context.Context, customerID int64) (int64, error) {
	return s.Carts.CreateCart(ctx, customerID)
}

func (s *Storefront) GetCart(ctx context.Context, customerID int64) (*cart.Cart, error) {
	return s.Carts.GetCart(ctx, customerID)
}

func (s *Storefront) AddToCart(ctx context.Context, customerID, productID int64, quantity int) (cart.AddOutcome, error) {
	return s.Carts.AddToCart(ctx, customerID, productID, quantity)
}

func (s *Storefront) RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error) {
	return s.Carts.RemoveFromCart(ctx, customerID, productID)
}

func (s *Storefront) CartTotal(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return s.Carts.CartTotal(ctx, customerID)
}

// QuoteCart prices the current cart with an optional discount code. Nothing
// is persisted.
func (s *Storefront) QuoteCart(ctx context.Context, customerID int64, code string) (pricing.Quote, error) {
	subtotal, err := s.Carts.CartTotal(ctx, customerID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.Pricing.Quote(subtotal, code), nil
}

func (s *Storefront) PlaceOrder(ctx context.Context, customerID int64) (*order.Result, error) {
	return s.Finalizer.Finalize(ctx, customerID)
}

func (s *Storefront) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	return s.Orders.GetByID(ctx, orderID)
}

func (s *Storefront) ListOrders(ctx context.Context, customerID int64) ([]order.Order, error) {
	return s.Orders.ListByCustomer(ctx, customerID)
}

func (s *Storefront) GetInvoice(ctx context.Context, orderID int64) (*invoice.Invoice, error) {
	return s.Invoices.GetByOrder(ctx, orderID)
}

// PayOrder claims the order's invoice as paid, then charges the order total
// through method. A second payment for the same order fails with
// invoice.ErrAlreadyPaid before anything is charged. A failed charge puts the
// invoice back to Pending.
func (s *Storefront) PayOrder(ctx context.Context, orderID int64, method payment.Method) (payment.Receipt, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return payment.Receipt{}, err
	}
	if o == nil {
		return payment.Receipt{}, ErrOrderNotFound
	}

	if err := s.Invoices.MarkPaid(ctx, o.ID); err != nil {
		return payment.Receipt{}, err
	}

	receipt, err := s.Payments.Process(ctx, method, payment.Charge{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Amount:      o.Total,
	})
	if err != nil {
		if rerr := s.Invoices.Reopen(ctx, o.ID); rerr != nil {
			return payment.Receipt{}, errors.Join(err, fmt.Errorf("invoice left paid: %w", rerr))
		}
		return payment.Receipt{}, err
	}
	return receipt, nil
}

func (s *Storefront) Stock(ctx context.Context, productID int64) (inventory.StockItem, error) {
	return s.Inventory.Stock(ctx, productID)
}

func (s *Storefront) UpdateStock(ctx context.Context, productID int64, available int) error {
	return s.Inventory.UpdateStock(ctx, productID, available)
}

func (s *Storefront) SalesReport(ctx context.Context) (report.SalesReport, error) {
	return s.Reports.Sales(ctx)
}
