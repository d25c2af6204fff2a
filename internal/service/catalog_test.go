package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

func newTestCatalogService(categoryRepo *mockCategoryRepository, productRepo *mockProductRepository) *CatalogService {
	return NewCatalogService(categoryRepo, productRepo, newTestEventProducer(), newTestLogger())
}

// --- Category Tests ---

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

	category, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{
		Name:        "Electronics",
		Description: "Phones, laptops and accessories",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Electronics", category.Name)
	assert.NotZero(t, category.CreatedAt)

	categoryRepo.AssertExpectations(t)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).
		Return(apperrors.Conflict("Category already exists"))

	category, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{Name: "Electronics"})

	assert.Nil(t, category)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateCategory_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Category{ID: "cat-1", Name: "Electronics"}

	categoryRepo.On("GetByID", ctx, "cat-1").Return(existing, nil)
	categoryRepo.On("Update", ctx, mock.AnythingOfType("*domain.Category")).Return(nil)

	category, err := svc.UpdateCategory(ctx, "cat-1", domain.UpdateCategoryInput{Name: strPtr("Gadgets")})

	require.NoError(t, err)
	assert.Equal(t, "Gadgets", category.Name)

	categoryRepo.AssertExpectations(t)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("GetByID", ctx, "nonexistent").Return(nil, apperrors.NotFound("category", "nonexistent"))

	category, err := svc.UpdateCategory(ctx, "nonexistent", domain.UpdateCategoryInput{Name: strPtr("Gadgets")})

	assert.Nil(t, category)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteCategory_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Category{ID: "cat-1", Name: "Electronics"}

	categoryRepo.On("GetByID", ctx, "cat-1").Return(existing, nil)
	categoryRepo.On("Delete", ctx, "cat-1").Return(nil)

	err := svc.DeleteCategory(ctx, "cat-1")

	require.NoError(t, err)
	categoryRepo.AssertExpectations(t)
}

func TestListCategories_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	expected := []domain.Category{
		{ID: "cat-1", Name: "Books"},
		{ID: "cat-2", Name: "Electronics"},
	}

	categoryRepo.On("ListAll", ctx).Return(expected, nil)

	categories, err := svc.ListCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, categories)
}

// --- Product Tests ---

func validCreateProductInput() domain.CreateProductInput {
	return domain.CreateProductInput{
		Name:       "Wireless Mouse",
		Price:      2999,
		CategoryID: "cat-1",
	}
}

func TestCreateProduct_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("GetByID", ctx, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, validCreateProductInput())

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Wireless Mouse", product.Name)
	assert.Equal(t, int64(2999), product.Price)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, "cat-1", product.CategoryID)

	categoryRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("GetByID", ctx, "cat-1").Return(nil, apperrors.NotFound("category", "cat-1"))

	product, err := svc.CreateProduct(ctx, validCreateProductInput())

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_KeepsExplicitCurrency(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	categoryRepo.On("GetByID", ctx, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	input := validCreateProductInput()
	input.Currency = "EUR"

	product, err := svc.CreateProduct(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "EUR", product.Currency)
}

func TestUpdateProduct_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1", Name: "Wireless Mouse", Price: 2999, CategoryID: "cat-1"}

	productRepo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	var price int64 = 2499
	product, err := svc.UpdateProduct(ctx, "prod-1", domain.UpdateProductInput{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, int64(2499), product.Price)
	assert.Equal(t, "Wireless Mouse", product.Name)

	productRepo.AssertExpectations(t)
}

func TestUpdateProduct_InvalidPrice(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1", Price: 2999}
	productRepo.On("GetByID", ctx, "prod-1").Return(existing, nil)

	var price int64 = -1
	product, err := svc.UpdateProduct(ctx, "prod-1", domain.UpdateProductInput{Price: &price})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateProduct_MoveToUnknownCategory(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1", CategoryID: "cat-1"}
	productRepo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	categoryRepo.On("GetByID", ctx, "cat-999").Return(nil, apperrors.NotFound("category", "cat-999"))

	product, err := svc.UpdateProduct(ctx, "prod-1", domain.UpdateProductInput{CategoryID: strPtr("cat-999")})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteProduct_Success(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1", Name: "Wireless Mouse"}

	productRepo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	productRepo.On("Delete", ctx, "prod-1").Return(nil)

	err := svc.DeleteProduct(ctx, "prod-1")

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	productRepo.On("GetByID", ctx, "nonexistent").Return(nil, apperrors.NotFound("product", "nonexistent"))

	err := svc.DeleteProduct(ctx, "nonexistent")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListProducts_WithFilter(t *testing.T) {
	categoryRepo := new(mockCategoryRepository)
	productRepo := new(mockProductRepository)
	svc := newTestCatalogService(categoryRepo, productRepo)
	ctx := context.Background()

	filter := domain.ProductFilter{Keyword: "mouse", CategoryID: "cat-1"}
	expected := []domain.Product{{ID: "prod-1", Name: "Wireless Mouse"}}

	productRepo.On("List", ctx, filter, 10, 0).Return(expected, 1, nil)

	products, total, err := svc.ListProducts(ctx, filter, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, expected, products)
	assert.Equal(t, 1, total)
}
