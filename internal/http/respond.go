package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yakotaki/chuanghua-shop/internal/docstore"
	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondDomainError maps the core error taxonomy to HTTP status codes.
func respondDomainError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   vErr.Error(),
			Code:    "validation_error",
			Details: vErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	default:
		var storageErr *docstore.StorageError
		if errors.As(err, &storageErr) {
			respondError(w, http.StatusInternalServerError, "storage_error", "storage failure")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
