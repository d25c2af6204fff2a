package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zamirguliyev/e-commerce-api/internal/service"
	"github.com/zamirguliyev/e-commerce-api/pkg/pagination"
)

// BasketHandler handles HTTP requests for basket endpoints.
type BasketHandler struct {
	service *service.BasketService
}

// NewBasketHandler creates a new basket HTTP handler.
func NewBasketHandler(svc *service.BasketService) *BasketHandler {
	return &BasketHandler{service: svc}
}

// Add handles POST /api/v1/basket/{productId}
func (h *BasketHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	basket, err := h.service.Add(r.Context(), user.ID, chi.URLParam(r, "productId"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: basket})
}

// List handles GET /api/v1/basket
func (h *BasketHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	params := pagination.FromRequest(r)

	items, total, err := h.service.List(r.Context(), user.ID, params.Limit, params.Offset)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: pagination.NewResult(items, total, params),
	})
}

// Remove handles DELETE /api/v1/basket/{productId}
func (h *BasketHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	if err := h.service.Remove(r.Context(), user.ID, chi.URLParam(r, "productId")); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "product removed from basket"},
	})
}
