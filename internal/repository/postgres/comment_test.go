package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/pkg/database"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

func newCommentTestFixture(t *testing.T) (*CommentRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewCommentRepository(mock)
	return repo, mock
}

func sampleStoredComment() *domain.Comment {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Comment{
		ID:        "com-001",
		ProductID: "prod-001",
		UserID:    "user-001",
		Rating:    4,
		Body:      "Works as advertised.",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func commentTestColumns() []string {
	return []string{"id", "product_id", "user_id", "rating", "body", "created_at", "updated_at"}
}

func TestCommentRepository_Create_Success(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	c := sampleStoredComment()
	mock.ExpectExec("INSERT INTO comments").
		WithArgs(c.ID, c.ProductID, c.UserID, c.Rating, c.Body, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, product_id, user_id, rating, body").
		WithArgs("com-404").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "com-404")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Update_Success(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	c := sampleStoredComment()
	mock.ExpectExec("UPDATE comments").
		WithArgs(c.Rating, c.Body, pgxmock.AnyArg(), c.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM comments").
		WithArgs("com-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "com-404")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByProduct_Success(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	c := sampleStoredComment()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(c.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	rows := pgxmock.NewRows(commentTestColumns()).
		AddRow(c.ID, c.ProductID, c.UserID, c.Rating, c.Body, c.CreatedAt, c.UpdatedAt)
	mock.ExpectQuery("SELECT id, product_id, user_id, rating, body").
		WithArgs(c.ProductID, 10, 0).
		WillReturnRows(rows)

	got, total, err := repo.ListByProduct(context.Background(), c.ProductID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, c.Body, got[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Summary_Success(t *testing.T) {
	repo, mock := newCommentTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("prod-001").
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

	got, err := repo.Summary(context.Background(), "prod-001")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)
	assert.Equal(t, 2, got.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
