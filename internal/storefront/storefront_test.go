package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type stubCarts struct {
	CartService
	total decimal.Decimal
}

func (s stubCarts) CartTotal(context.Context, int64) (decimal.Decimal, error) {
	return s.total, nil
}

type stubOrders struct {
	orders map[int64]*order.Order
}

func (s stubOrders) GetByID(_ context.Context, id int64) (*order.Order, error) {
	return s.orders[id], nil
}

func (s stubOrders) ListByCustomer(context.Context, int64) ([]order.Order, error) {
	return nil, nil
}

// stubInvoices tracks invoice status per order id.
type stubInvoices struct {
	status    map[int64]invoice.Status
	reopened  []int64
	reopenErr error
}

func (s *stubInvoices) GetByOrder(context.Context, int64) (*invoice.Invoice, error) {
	return nil, nil
}

func (s *stubInvoices) MarkPaid(_ context.Context, orderID int64) error {
	st, ok := s.status[orderID]
	switch {
	case !ok:
		return invoice.ErrNotFound
	case st == invoice.StatusPaid:
		return invoice.ErrAlreadyPaid
	}
	s.status[orderID] = invoice.StatusPaid
	return nil
}

func (s *stubInvoices) Reopen(_ context.Context, orderID int64) error {
	if s.reopenErr != nil {
		return s.reopenErr
	}
	s.reopened = append(s.reopened, orderID)
	s.status[orderID] = invoice.StatusPending
	return nil
}

func TestQuoteCart(t *testing.T) {
	sf := &Storefront{
		Carts:   stubCarts{total: d("100.00")},
		Pricing: pricing.Default(),
	}

	q, err := sf.QuoteCart(context.Background(), 1, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, "20.00", q.Discount.StringFixed(2))
	assert.Equal(t, "97.99", q.Total.StringFixed(2))
}

func newPayStorefront() (*Storefront, *stubInvoices) {
	invoices := &stubInvoices{status: map[int64]invoice.Status{5: invoice.StatusPending}}
	return &Storefront{
		Orders: stubOrders{orders: map[int64]*order.Order{
			5: {ID: 5, Number: "ORD-20261015-0001", Total: d("2202.36")},
		}},
		Invoices: invoices,
		Payments: payment.DefaultRegistry(zap.NewNop()),
	}, invoices
}

func TestPayOrder(t *testing.T) {
	sf, invoices := newPayStorefront()
	ctx := context.Background()

	receipt, err := sf.PayOrder(ctx, 5, payment.MethodPayPal)
	require.NoError(t, err)
	assert.Equal(t, payment.MethodPayPal, receipt.Method)
	assert.True(t, receipt.Amount.Equal(d("2202.36")))
	assert.Equal(t, invoice.StatusPaid, invoices.status[5])

	_, err = sf.PayOrder(ctx, 6, payment.MethodPayPal)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPayOrder_SecondPaymentRejected(t *testing.T) {
	sf, _ := newPayStorefront()
	ctx := context.Background()

	_, err := sf.PayOrder(ctx, 5, payment.MethodCreditCard)
	require.NoError(t, err)

	receipt, err := sf.PayOrder(ctx, 5, payment.MethodCreditCard)
	require.ErrorIs(t, err, invoice.ErrAlreadyPaid)
	assert.Empty(t, receipt.Reference, "nothing charged")
}

func TestPayOrder_FailedChargeReopensInvoice(t *testing.T) {
	sf, invoices := newPayStorefront()
	ctx := context.Background()

	_, err := sf.PayOrder(ctx, 5, payment.Method("cash"))
	require.ErrorIs(t, err, payment.ErrUnknownMethod)
	assert.Equal(t, []int64{5}, invoices.reopened)
	assert.Equal(t, invoice.StatusPending, invoices.status[5])

	_, err = sf.PayOrder(ctx, 5, payment.MethodBankTransfer)
	require.NoError(t, err, "order can still be paid")
}

func TestPayOrder_ReopenFailure(t *testing.T) {
	sf, invoices := newPayStorefront()
	invoices.reopenErr = errors.New("db down")

	_, err := sf.PayOrder(context.Background(), 5, payment.Method("cash"))
	require.ErrorIs(t, err, payment.ErrUnknownMethod)
	assert.ErrorContains(t, err, "invoice left paid: db down")
}

func TestPricingFromConfig(t *testing.T) {
	cfg := config.Config{TaxRate: d("0.08"), FlatShippingFee: d("9.99"), ShippingPolicy: config.ShippingFlat}
	assert.Equal(t, "9.99", Pricing(cfg).Price(d("500")).Shipping.StringFixed(2))

	cfg.ShippingPolicy = config.ShippingTiered
	assert.True(t, Pricing(cfg).Price(d("500")).Shipping.IsZero())
	assert.Equal(t, "5.99", Pricing(cfg).Price(d("60")).Shipping.StringFixed(2))
}

func TestWire(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	sf := Wire(Components{
		Config: config.Config{TaxRate: d("0.08"), FlatShippingFee: d("9.99"), ShippingPolicy: config.ShippingFlat, InvoiceDueDays: 30},
		DB:     sqlDB,
		Logger: zap.NewNop(),
	})

	assert.NotNil(t, sf.Catalog)
	assert.NotNil(t, sf.Customers)
	assert.NotNil(t, sf.Finalizer)
	assert.NotNil(t, sf.Reports)
	assert.IsType(t, &cart.Service{}, sf.Carts)
	require.NoError(t, mock.ExpectationsWereMet())
}
