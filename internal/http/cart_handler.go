package http

import (
	"encoding/json"
	"net/http"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/service"
)

type CartHandler struct {
	shop *service.Shop
}

func NewCartHandler(shop *service.Shop) *CartHandler {
	return &CartHandler{shop: shop}
}

type AddItemRequestDTO struct {
	Slug string `json:"slug"`
	Qty  int    `json:"qty"`
}

type UpdateCartRequestDTO struct {
	Items map[string]int `json:"items"`
}

// CartViewDTO is the cart resolved against the catalog right now, which is
// what the cart page shows.
type CartViewDTO struct {
	Items     []domain.LineItem `json:"items"`
	Total     string            `json:"total"`
	ItemCount int               `json:"item_count"`
}

func (h *CartHandler) cartView(w http.ResponseWriter, r *http.Request, status int) {
	sessionID := sessionIDFromContext(r.Context())
	snap, err := h.shop.CartSnapshot(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	count, err := h.shop.CartItemCount(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, status, CartViewDTO{Items: snap.Items, Total: snap.Total.String(), ItemCount: count})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.cartView(w, r, http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_slug", "slug is required")
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	if _, err := h.shop.AddToCart(r.Context(), sessionIDFromContext(r.Context()), req.Slug, req.Qty); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartView(w, r, http.StatusCreated)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := h.shop.UpdateCart(r.Context(), sessionIDFromContext(r.Context()), req.Items); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartView(w, r, http.StatusOK)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.ClearCart(r.Context(), sessionIDFromContext(r.Context())); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
