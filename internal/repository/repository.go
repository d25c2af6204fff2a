package repository

import (
	"context"
	"time"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmailOrUsername checks whether any user already holds the
	// given email or username.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// Update modifies an existing user's profile fields in the store.
	Update(ctx context.Context, user *domain.User) error

	// List returns a paginated page of users filtered by keyword, newest
	// first, along with the total match count.
	List(ctx context.Context, keyword string, limit, offset int) ([]domain.User, int, error)

	// UpdateStatus sets the status of the user with the given id.
	UpdateStatus(ctx context.Context, id, status string) error

	// UpdateRefreshTokenHash overwrites the stored refresh token hash for
	// the user. An empty hash clears the stored token.
	UpdateRefreshTokenHash(ctx context.Context, id, hash string) error

	// SetResetCode stores a password reset code and its expiry on the user,
	// overwriting any prior code.
	SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error

	// UpdatePassword sets a new password hash for the user.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// CompletePasswordReset atomically sets the new password hash, clears
	// the reset code and its expiry, and revokes the stored refresh token.
	CompletePasswordReset(ctx context.Context, id, passwordHash string) error
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category into the store.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// Update modifies an existing category in the store.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category and, via the schema's cascade, its products.
	Delete(ctx context.Context, id string) error

	// ListAll returns all categories ordered by name.
	ListAll(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// List returns a paginated page of products matching the filter, newest
	// first, along with the total match count.
	List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error)
}

// CommentRepository defines the interface for comment persistence operations.
type CommentRepository interface {
	// Create inserts a new comment into the store.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Comment, error)

	// Update modifies an existing comment in the store.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// ListByProduct returns a paginated page of comments for the product,
	// newest first, along with the total count.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, error)

	// Summary returns aggregate rating statistics for the product.
	Summary(ctx context.Context, productID string) (*domain.CommentSummary, error)
}

// WishlistRepository defines the interface for wishlist persistence operations.
type WishlistRepository interface {
	// Add inserts a product into the user's wishlist.
	Add(ctx context.Context, userID, productID string) error

	// Remove deletes a product from the user's wishlist.
	Remove(ctx context.Context, userID, productID string) error

	// List returns a paginated list of wishlist items for the user and the total count.
	List(ctx context.Context, userID string, limit, offset int) ([]domain.WishlistItem, int, error)

	// Exists checks whether a product is in the user's wishlist.
	Exists(ctx context.Context, userID, productID string) (bool, error)
}

// BasketRepository defines the interface for basket storage operations.
type BasketRepository interface {
	// Get retrieves the user's basket, or an empty basket if none is stored.
	Get(ctx context.Context, userID string) (*domain.Basket, error)

	// Save stores the user's basket, refreshing its TTL.
	Save(ctx context.Context, basket *domain.Basket) error

	// Delete removes the user's basket entirely.
	Delete(ctx context.Context, userID string) error
}
