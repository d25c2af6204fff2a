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
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

func newProductTestFixture(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewProductRepository(mock)
	return repo, mock
}

func sampleStoredProduct() *domain.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Product{
		ID:          "prod-001",
		Name:        "Wireless Mouse",
		Description: "Quiet clicks",
		Price:       2990,
		Currency:    "USD",
		CategoryID:  "cat-001",
		CoverImage:  "https://img.example.com/mouse.jpg",
		Images:      []string{"https://img.example.com/mouse-side.jpg"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productTestColumns() []string {
	return []string{
		"id", "name", "description", "price", "currency",
		"category_id", "cover_image", "images", "created_at", "updated_at",
	}
}

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleStoredProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Description, p.Price, p.Currency, p.CategoryID, p.CoverImage, p.Images, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleStoredProduct()
	rows := pgxmock.NewRows(productTestColumns()).
		AddRow(p.ID, p.Name, p.Description, p.Price, p.Currency, p.CategoryID, p.CoverImage, p.Images, p.CreatedAt, p.UpdatedAt)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(p.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, int64(2990), got.Price)
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.Images, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs("prod-404").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "prod-404")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleStoredProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.Description, p.Price, p.Currency, p.CategoryID, p.CoverImage, p.Images, pgxmock.AnyArg(), p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), p)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("prod-001").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "prod-001")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_NoFilter(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleStoredProduct()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	rows := pgxmock.NewRows(productTestColumns()).
		AddRow(p.ID, p.Name, p.Description, p.Price, p.Currency, p.CategoryID, p.CoverImage, p.Images, p.CreatedAt, p.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM products (.+) ORDER BY created_at DESC").
		WithArgs(10, 0).
		WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), domain.ProductFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_KeywordAndCategory(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleStoredProduct()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%mouse%", "cat-001").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	rows := pgxmock.NewRows(productTestColumns()).
		AddRow(p.ID, p.Name, p.Description, p.Price, p.Currency, p.CategoryID, p.CoverImage, p.Images, p.CreatedAt, p.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE (.+)ILIKE(.+)category_id").
		WithArgs("%mouse%", "cat-001", 20, 0).
		WillReturnRows(rows)

	filter := domain.ProductFilter{Keyword: "mouse", CategoryID: "cat-001"}
	got, total, err := repo.List(context.Background(), filter, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_EmptyResultIsNotNil(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(productTestColumns()))

	got, total, err := repo.List(context.Background(), domain.ProductFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
