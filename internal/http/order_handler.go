package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	res, err := h.svc.PlaceOrder(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, err, "failed to place order")
		return
	}

	status := http.StatusCreated
	if res.Outcome != order.OutcomeFinalized {
		status = http.StatusAccepted
	}
	writeJSON(w, status, res)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, err, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid orderId")
		return
	}

	o, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, r, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid orderId")
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err, "failed to load invoice")
		return
	}
	if inv == nil {
		writeError(w, r, http.StatusNotFound, "invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type paymentRequest struct {
	Method payment.Method `json:"method"`
}

func (h *Handler) PayOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid orderId")
		return
	}

	var req paymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	receipt, err := h.svc.PayOrder(r.Context(), orderID, req.Method)
	if err != nil {
		h.fail(w, r, err, "failed to process payment")
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.SalesReport(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to build sales report")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
