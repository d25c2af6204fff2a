package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// BasketService implements the per-user shopping basket.
type BasketService struct {
	basketRepo  repository.BasketRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// NewBasketService creates a new basket service.
func NewBasketService(
	basketRepo repository.BasketRepository,
	productRepo repository.ProductRepository,
	logger *slog.Logger,
) *BasketService {
	return &BasketService{
		basketRepo:  basketRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Add puts an existing product into the user's basket. Adding a product
// that is already present is a conflict.
func (s *BasketService) Add(ctx context.Context, userID, productID string) (*domain.Basket, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, apperrors.NotFound("product", productID)
	}

	basket, err := s.basketRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get basket: %w", err)
	}

	if basket.Contains(productID) {
		return nil, apperrors.Conflict("Product already in basket")
	}

	basket.Items = append(basket.Items, domain.BasketItem{
		ProductID: productID,
		AddedAt:   time.Now().UTC(),
	})

	if err := s.basketRepo.Save(ctx, basket); err != nil {
		return nil, fmt.Errorf("save basket: %w", err)
	}

	s.logger.InfoContext(ctx, "product added to basket",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return basket, nil
}

// List returns a paginated slice of the user's basket items and the total count.
func (s *BasketService) List(ctx context.Context, userID string, limit, offset int) ([]domain.BasketItem, int, error) {
	basket, err := s.basketRepo.Get(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("get basket: %w", err)
	}

	total := len(basket.Items)
	if offset >= total {
		return []domain.BasketItem{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return basket.Items[offset:end], total, nil
}

// Remove deletes a product from the user's basket.
func (s *BasketService) Remove(ctx context.Context, userID, productID string) error {
	basket, err := s.basketRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get basket: %w", err)
	}

	if !basket.RemoveItem(productID) {
		return apperrors.NotFound("basket item", productID)
	}

	if err := s.basketRepo.Save(ctx, basket); err != nil {
		return fmt.Errorf("save basket: %w", err)
	}

	s.logger.InfoContext(ctx, "product removed from basket",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}
