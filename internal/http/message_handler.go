package http

import (
	"encoding/json"
	"net/http"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
	"github.com/yakotaki/chuanghua-shop/internal/service"
)

type MessageHandler struct {
	shop *service.Shop
}

func NewMessageHandler(shop *service.Shop) *MessageHandler {
	return &MessageHandler{shop: shop}
}

type SubmitMessageRequestDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Message string `json:"message"`
}

func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lang := domain.NormalizeLang(r.URL.Query().Get("lang"))
	m, err := h.shop.SubmitMessage(r.Context(), req.Name, req.Contact, req.Message, lang)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}
