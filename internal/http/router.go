package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

func NewRouter(h *Handler, allowOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recover(h.logger))
	r.Use(middleware.CORS(allowOrigins))
	r.Use(chimw.Timeout(10 * time.Second))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{productId}/stock", h.GetStock)
		r.Put("/products/{productId}/stock", h.UpdateStock)

		r.Post("/customers", h.CreateCustomer)
		r.Route("/customers/{customerId}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)

			r.Post("/cart", h.CreateCart)
			r.Get("/cart", h.GetCart)
			r.Post("/cart/items", h.AddCartItem)
			r.Delete("/cart/items/{productId}", h.RemoveCartItem)
			r.Get("/cart/quote", h.QuoteCart)

			r.Post("/orders", h.PlaceOrder)
			r.Get("/orders", h.ListOrders)
		})

		r.Get("/orders/{orderId}", h.GetOrder)
		r.Get("/orders/{orderId}/invoice", h.GetInvoice)
		r.Post("/orders/{orderId}/payments", h.PayOrder)

		r.Get("/reports/sales", h.SalesReport)
	})

	return r
}
