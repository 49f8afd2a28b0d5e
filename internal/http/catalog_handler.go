package httpapi

import (
	"net/http"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid productId")
		return
	}

	item, err := h.svc.Stock(r.Context(), productID)
	if err != nil {
		h.fail(w, r, err, "failed to load stock")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type stockRequest struct {
	Available *int `json:"available"`
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productId")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid productId")
		return
	}

	var req stockRequest
	if err := decode(r, &req); err != nil || req.Available == nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.svc.UpdateStock(r.Context(), productID, *req.Available); err != nil {
		h.fail(w, r, err, "failed to update stock")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"productId": productID, "available": *req.Available})
}
