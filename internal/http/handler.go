package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/invoice"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/report"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storefront"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	Stock(ctx context.Context, productID int64) (inventory.StockItem, error)
	UpdateStock(ctx context.Context, productID int64, available int) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, c customer.Input) (int64, error)
	GetCustomer(ctx context.Context, id int64) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, c customer.Input) (bool, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type CartService interface {
	CreateCart(ctx context.Context, customerID int64) (int64, error)
	GetCart(ctx context.Context, customerID int64) (*cart.Cart, error)
	AddToCart(ctx context.Context, customerID, productID int64, quantity int) (cart.AddOutcome, error)
	RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error)
	QuoteCart(ctx context.Context, customerID int64, code string) (pricing.Quote, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, customerID int64) (*order.Result, error)
	GetOrder(ctx context.Context, orderID int64) (*order.Order, error)
	ListOrders(ctx context.Context, customerID int64) ([]order.Order, error)
	GetInvoice(ctx context.Context, orderID int64) (*invoice.Invoice, error)
	PayOrder(ctx context.Context, orderID int64, method payment.Method) (payment.Receipt, error)
}

type ReportService interface {
	SalesReport(ctx context.Context) (report.SalesReport, error)
}

// Service is everything the API exposes. *storefront.Storefront implements it.
type Service interface {
	CatalogService
	CustomerService
	CartService
	OrderService
	ReportService
}

var _ Service = (*storefront.Storefront)(nil)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(svc Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type cartResponse struct {
	*cart.Cart
	Total decimal.Decimal `json:"totalAmount"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error":         msg,
		"correlationId": middleware.GetCorrelationID(r.Context()),
	})
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and reported as 500 with msg.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var ce *db.ConstraintError
	switch {
	case errors.As(err, &ce):
		writeError(w, r, constraintStatus(ce.Kind), ce.Kind.String()+" violation")
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, storefront.ErrOrderNotFound), errors.Is(err, invoice.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, invoice.ErrAlreadyPaid):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrNegativeStock), errors.Is(err, payment.ErrUnknownMethod):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg,
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
		)
		writeError(w, r, http.StatusInternalServerError, msg)
	}
}

func constraintStatus(k db.ViolationKind) int {
	switch k {
	case db.UniqueViolation:
		return http.StatusConflict
	case db.NotNullViolation, db.CheckViolation:
		return http.StatusBadRequest
	case db.ForeignKeyViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
