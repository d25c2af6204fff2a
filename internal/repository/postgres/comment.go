package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/pkg/database"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	pool database.DBTX
}

// NewCommentRepository creates a new PostgreSQL-backed comment repository.
func NewCommentRepository(pool database.DBTX) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a new comment into the database.
func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (id, product_id, user_id, rating, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.ProductID,
		c.UserID,
		c.Rating,
		c.Body,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its ID.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `
		SELECT id, product_id, user_id, rating, body, created_at, updated_at
		FROM comments
		WHERE id = $1`

	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.ProductID,
		&c.UserID,
		&c.Rating,
		&c.Body,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}

	return &c, nil
}

// Update modifies an existing comment in the database.
func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE comments
		SET rating = $1, body = $2, updated_at = $3
		WHERE id = $4`

	ct, err := r.pool.Exec(ctx, query, c.Rating, c.Body, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("comment", c.ID)
	}

	return nil
}

// Delete removes a comment from the database by its ID.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("comment", id)
	}

	return nil
}

// ListByProduct returns a paginated page of comments for the product, newest
// first, along with the total count.
func (r *CommentRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE product_id = $1`, productID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := `
		SELECT id, product_id, user_id, rating, body, created_at, updated_at
		FROM comments
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID,
			&c.ProductID,
			&c.UserID,
			&c.Rating,
			&c.Body,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comment rows: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, total, nil
}

// Summary returns aggregate rating statistics for the product.
func (r *CommentRepository) Summary(ctx context.Context, productID string) (*domain.CommentSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM comments
		WHERE product_id = $1`

	var s domain.CommentSummary
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&s.AverageRating, &s.TotalCount); err != nil {
		return nil, fmt.Errorf("comment summary: %w", err)
	}

	return &s, nil
}
