package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/service"
)

type ProductHandler struct {
	shop *service.Shop
}

func NewProductHandler(shop *service.Shop) *ProductHandler {
	return &ProductHandler{shop: shop}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.shop.ListProducts(r.Context(), false)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Get resolves a slug for the public product page. Inactive products behave
// like missing ones here; only the admin surface sees them.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.shop.FindProduct(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !p.Active {
		respondDomainError(w, domain.ErrProductNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
