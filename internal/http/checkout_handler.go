package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/service"
)

type CheckoutHandler struct {
	shop *service.Shop
}

func NewCheckoutHandler(shop *service.Shop) *CheckoutHandler {
	return &CheckoutHandler{shop: shop}
}

type CheckoutRequestDTO struct {
	BuyerName    string `json:"buyer_name"`
	BuyerContact string `json:"buyer_contact"`
	Address      string `json:"address"`
	Note         string `json:"note"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	committed, err := h.shop.Checkout(r.Context(), sessionIDFromContext(r.Context()), domain.CheckoutInfo{
		BuyerName:    req.BuyerName,
		BuyerContact: req.BuyerContact,
		Address:      req.Address,
		Note:         req.Note,
		Lang:         domain.NormalizeLang(r.URL.Query().Get("lang")),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, committed)
}

// GetOrder backs the order confirmation page.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.shop.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
