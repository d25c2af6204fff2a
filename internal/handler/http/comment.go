package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zamirguliyev/e-commerce-api/internal/service"
	"github.com/zamirguliyev/e-commerce-api/pkg/pagination"
	"github.com/zamirguliyev/e-commerce-api/pkg/validator"
)

// CommentHandler handles HTTP requests for product comment endpoints.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new comment HTTP handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// --- Request DTOs ---

// CreateCommentRequest is the JSON request body for creating a comment.
type CreateCommentRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" validate:"required,min=1,max=2000"`
}

// UpdateCommentRequest is the JSON request body for updating a comment.
type UpdateCommentRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Body   *string `json:"body" validate:"omitempty,min=1,max=2000"`
}

// CommentsResponse bundles a page of comments with rating aggregates.
type CommentsResponse struct {
	Comments any `json:"comments"`
	Summary  any `json:"summary"`
}

// --- Handlers ---

// Create handles POST /api/v1/products/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	comment, err := h.service.Create(r.Context(), user.ID, service.CreateCommentInput{
		ProductID: chi.URLParam(r, "id"),
		Rating:    req.Rating,
		Body:      req.Body,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: comment})
}

// ListByProduct handles GET /api/v1/products/{id}/comments
func (h *CommentHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	comments, total, summary, err := h.service.ListByProduct(r.Context(), chi.URLParam(r, "id"), params.Limit, params.Offset)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: CommentsResponse{
			Comments: pagination.NewResult(comments, total, params),
			Summary:  summary,
		},
	})
}

// Update handles PUT /api/v1/comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	comment, err := h.service.Update(r.Context(), user, chi.URLParam(r, "id"), service.UpdateCommentInput{
		Rating: req.Rating,
		Body:   req.Body,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: comment})
}

// Delete handles DELETE /api/v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHENTICATED", Message: "user not authenticated"},
		})
		return
	}

	if err := h.service.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "comment deleted"},
	})
}
