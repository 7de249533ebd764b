package usecase_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/metrics"
)

type fixture struct {
	store      *memory.Store
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
}

func newFixture() fixture {
	store := memory.NewStore()
	return fixture{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories(), store.Products(), store, logger.Nop()),
		products:   usecase.NewProductUseCase(store.Products(), store),
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func productIn(name, categoryID string) dto.ProductRequest {
	in := dto.ProductRequest{Name: name, Price: price("1.50"), StockQuantity: intPtr(10)}
	if categoryID != "" {
		in.Category = &dto.IDRef{ID: strPtr(categoryID)}
	}
	return in
}

func TestCategoryUseCase_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.categories.Create(ctx, dto.CategoryRequest{Name: " Bebidas ", Description: strPtr("frías")})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bebidas", out.Name)
	assert.Equal(t, "frías", *out.Description)
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
	assert.Equal(t, "UTC", out.CreatedAt.Location().String())
}

func TestCategoryUseCase_NombresNFCEquivalentesChocan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.categories.Create(ctx, dto.CategoryRequest{Name: "Caf\u00e9"})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, dto.CategoryRequest{Name: "Cafe\u0301"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "é precompuesta y e+acento combinante son el mismo nombre")
}

func TestCategoryUseCase_ValidacionAntesDelStore(t *testing.T) {
	f := newFixture()
	_, err := f.categories.Create(context.Background(), dto.CategoryRequest{Name: "\t"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUseCase_UpdateConservaCreatedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.categories.Create(ctx, dto.CategoryRequest{Name: "A", Description: strPtr("d")})
	require.NoError(t, err)

	updated, err := f.categories.Update(ctx, created.ID, dto.CategoryRequest{Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Nil(t, updated.Description)

	_, err = f.categories.Update(ctx, "00000000-0000-0000-0000-000000000001", dto.CategoryRequest{Name: "C"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_DeleteCascadaYMetrica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat, err := f.categories.Create(ctx, dto.CategoryRequest{Name: "A"})
	require.NoError(t, err)
	for _, n := range []string{"p1", "p2", "p3"} {
		_, err := f.products.Create(ctx, productIn(n, cat.ID))
		require.NoError(t, err)
	}

	before := testutil.ToFloat64(metrics.CascadeDeletedProducts)
	require.NoError(t, f.categories.Delete(ctx, cat.ID))
	assert.Equal(t, before+3, testutil.ToFloat64(metrics.CascadeDeletedProducts))

	list, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, f.categories.Delete(ctx, cat.ID), domain.ErrCategoryNotFound)
	assert.ErrorIs(t, f.categories.Delete(ctx, "x"), domain.ErrCategoryNotFound)
}

func TestCategoryUseCase_ListProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.categories.Create(ctx, dto.CategoryRequest{Name: "A"})
	b, _ := f.categories.Create(ctx, dto.CategoryRequest{Name: "B"})
	_, err := f.products.Create(ctx, productIn("a1", a.ID))
	require.NoError(t, err)
	_, err = f.products.Create(ctx, productIn("b1", b.ID))
	require.NoError(t, err)

	list, err := f.categories.ListProducts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].Name)
	assert.Equal(t, a.ID, list[0].Category.ID)

	_, err = f.categories.ListProducts(ctx, "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
