package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
)

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customer.Input
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := h.svc.CreateCustomer(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "failed to create customer")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"customerId": id})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	c, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "failed to load customer")
		return
	}
	if c == nil {
		writeError(w, r, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateCustomer answers 200 for unknown ids too; "updated" tells them apart.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	var req customer.Input
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	updated, err := h.svc.UpdateCustomer(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err, "failed to update customer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
		h.fail(w, r, err, "failed to delete customer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
