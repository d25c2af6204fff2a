package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// WishlistService implements the per-user product wishlist.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Add puts an existing product on the user's wishlist. The duplicate
// pre-check is backed by the unique (user, product) index.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return apperrors.NotFound("product", productID)
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("check wishlist: %w", err)
	}
	if exists {
		return apperrors.Conflict("Product already in wishlist")
	}

	if err := s.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}

// List returns a page of the user's wishlist items and the total count.
func (s *WishlistService) List(ctx context.Context, userID string, limit, offset int) ([]domain.WishlistItem, int, error) {
	items, total, err := s.wishlistRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlist: %w", err)
	}
	return items, total, nil
}

// Remove deletes a product from the user's wishlist.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}
