package httpapi

import (
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	id, err := h.svc.CreateCart(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, err, "failed to create cart")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"cartId": id})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	c, err := h.svc.GetCart(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, err, "failed to load cart")
		return
	}
	if c == nil {
		writeError(w, r, http.StatusNotFound, "cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: c, Total: c.Total()})
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddCartItem answers 200 when a line was added or merged and 202 when
// nothing changed because an entity was missing.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	var req addItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	outcome, err := h.svc.AddToCart(r.Context(), customerID, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(w, r, err, "failed to add item")
		return
	}

	status := http.StatusOK
	if outcome != cart.AddOutcomeAdded && outcome != cart.AddOutcomeMerged {
		status = http.StatusAccepted
	}
	writeJSON(w, status, map[string]cart.AddOutcome{"outcome": outcome})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid productId")
		return
	}

	removed, err := h.svc.RemoveFromCart(r.Context(), customerID, productID)
	if err != nil {
		h.fail(w, r, err, "failed to remove item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(r, "customerId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid customerId")
		return
	}

	q, err := h.svc.QuoteCart(r.Context(), customerID, r.URL.Query().Get("code"))
	if err != nil {
		h.fail(w, r, err, "failed to quote cart")
		return
	}
	writeJSON(w, http.StatusOK, q)
}
