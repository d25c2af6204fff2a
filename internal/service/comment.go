package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// CommentService implements product comments and ratings.
type CommentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateCommentInput holds the parameters for creating a comment.
type CreateCommentInput struct {
	ProductID string
	Rating    int
	Body      string
}

// UpdateCommentInput holds the parameters for updating a comment.
type UpdateCommentInput struct {
	Rating *int
	Body   *string
}

// Create adds a comment with a rating to an existing product.
func (s *CommentService) Create(ctx context.Context, userID string, input CreateCommentInput) (*domain.Comment, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if input.Body == "" {
		return nil, apperrors.InvalidInput("body is required")
	}

	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, apperrors.NotFound("product", input.ProductID)
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("product_id", comment.ProductID),
		slog.String("user_id", userID),
	)

	return comment, nil
}

// ListByProduct returns a paginated page of comments for the product along
// with aggregate rating statistics.
func (s *CommentService) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, *domain.CommentSummary, error) {
	comments, total, err := s.commentRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("list comments: %w", err)
	}

	summary, err := s.commentRepo.Summary(ctx, productID)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("comment summary: %w", err)
	}

	return comments, total, summary, nil
}

// Update modifies the caller's own comment.
func (s *CommentService) Update(ctx context.Context, caller *domain.User, commentID string, input UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment for update: %w", err)
	}

	if comment.UserID != caller.ID {
		return nil, apperrors.Forbidden("You can only edit your own comments")
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, apperrors.InvalidInput("rating must be between 1 and 5")
		}
		comment.Rating = *input.Rating
	}
	if input.Body != nil {
		if *input.Body == "" {
			return nil, apperrors.InvalidInput("body must not be empty")
		}
		comment.Body = *input.Body
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment updated",
		slog.String("comment_id", commentID),
		slog.String("user_id", caller.ID),
	)

	return comment, nil
}

// Delete removes a comment. Owners may delete their own comments;
// administrators may delete any.
func (s *CommentService) Delete(ctx context.Context, caller *domain.User, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment for delete: %w", err)
	}

	if comment.UserID != caller.ID && !caller.IsAdmin() {
		return apperrors.Forbidden("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment deleted",
		slog.String("comment_id", commentID),
		slog.String("deleted_by", caller.ID),
	)

	return nil
}
