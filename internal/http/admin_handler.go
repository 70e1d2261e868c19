package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/service"
)

type AdminHandler struct {
	shop *service.Shop
}

func NewAdminHandler(shop *service.Shop) *AdminHandler {
	return &AdminHandler{shop: shop}
}

type AdminOverviewDTO struct {
	Products []domain.Product `json:"products"`
	Orders   []domain.Order   `json:"orders"`
	Messages []domain.Message `json:"messages"`
}

type ProductRequestDTO struct {
	Slug    string          `json:"slug"`
	Active  *bool           `json:"active"`
	Price   decimal.Decimal `json:"price"`
	TitleZH string          `json:"title_zh"`
	TitleEN string          `json:"title_en"`
	ShortZH string          `json:"short_zh"`
	ShortEN string          `json:"short_en"`
	DescZH  string          `json:"desc_zh"`
	DescEN  string          `json:"desc_en"`
	Images  []string        `json:"images"`
}

func (dto ProductRequestDTO) toProduct() domain.Product {
	return domain.Product{
		Slug: dto.Slug,
		// New products default to visible.
		Active:  dto.Active == nil || *dto.Active,
		Price:   dto.Price,
		TitleZH: dto.TitleZH,
		TitleEN: dto.TitleEN,
		ShortZH: dto.ShortZH,
		ShortEN: dto.ShortEN,
		DescZH:  dto.DescZH,
		DescEN:  dto.DescEN,
		Images:  dto.Images,
	}
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.shop.ListProducts(ctx, true)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	orders, err := h.shop.ListOrders(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	messages, err := h.shop.ListMessages(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AdminOverviewDTO{Products: products, Orders: orders, Messages: messages})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	saved, err := h.shop.UpsertProduct(r.Context(), req.toProduct())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.Slug = chi.URLParam(r, "slug")

	saved, err := h.shop.UpsertProduct(r.Context(), req.toProduct())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// ToggleProduct flips public visibility, the admin "hide this item" switch.
func (h *AdminHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	p, err := h.shop.FindProduct(ctx, slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := h.shop.SetProductActive(ctx, slug, !p.Active); err != nil {
		respondDomainError(w, err)
		return
	}
	p, err = h.shop.FindProduct(ctx, slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeleteProduct(r.Context(), chi.URLParam(r, "slug")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	csv, err := h.shop.ExportOrdersCSV(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=chuanghua_orders.csv`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
