package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridewear/storefront/internal/models"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func intPtr(i int) *int             { return &i }
func boolPtr(b bool) *bool          { return &b }
func slicePtr(s []string) *[]string { return &s }

func validProductInput() ProductInput {
	return ProductInput{
		Name:        strPtr("Runner Tee"),
		Description: strPtr("lightweight running tee"),
		Price:       floatPtr(29.99),
		Category:    strPtr(models.CategoryTShirts),
		Sizes:       slicePtr([]string{"S", "M", "L"}),
		Colors:      slicePtr([]string{"Red", "Black"}),
		Image:       strPtr("/img/runner-tee.jpg"),
		Stock:       intPtr(100),
		Brand:       strPtr("Stride"),
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	p, err := env.Catalog.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.True(t, p.IsActive)
	assert.EqualValues(t, 100, p.Stock)

	got, err := env.Catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, got.Sizes)
	assert.Equal(t, []string{"Red", "Black"}, got.Colors)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	tests := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
	}{
		{"missing name", func(in *ProductInput) { in.Name = strPtr("") }, "name"},
		{"zero price", func(in *ProductInput) { in.Price = floatPtr(0) }, "price"},
		{"negative price", func(in *ProductInput) { in.Price = floatPtr(-5) }, "price"},
		{"unknown category", func(in *ProductInput) { in.Category = strPtr("Hats") }, "category"},
		{"negative stock", func(in *ProductInput) { in.Stock = intPtr(-1) }, "stock"},
		{"unknown size", func(in *ProductInput) { in.Sizes = slicePtr([]string{"M", "XXXL"}) }, "sizes"},
		{"active without sizes", func(in *ProductInput) { in.Sizes = slicePtr(nil) }, "sizes"},
		{"active without colors", func(in *ProductInput) { in.Colors = slicePtr(nil) }, "colors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)

			_, err := env.Catalog.CreateProduct(ctx, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var v *ValidationError
			require.ErrorAs(t, err, &v)
			assert.Contains(t, v.Fields, tt.field)
		})
	}
}

func TestCatalogService_CreateProduct_AccumulatesAllFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	in := validProductInput()
	in.Name = strPtr("")
	in.Price = floatPtr(0)
	in.Category = strPtr("Hats")

	_, err := env.Catalog.CreateProduct(ctx, in)
	require.Error(t, err)

	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 3)
}

func TestCatalogService_InactiveProductMayHaveNoVariants(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	in := validProductInput()
	in.IsActive = boolPtr(false)
	in.Sizes = slicePtr(nil)
	in.Colors = slicePtr(nil)

	p, err := env.Catalog.CreateProduct(ctx, in)
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	// the stored row must be inactive too, not just the returned struct
	var stored models.Product
	require.NoError(t, env.DB.First(&stored, p.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestCatalogService_UpdateProduct_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	p, err := env.Catalog.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	updated, err := env.Catalog.UpdateProduct(ctx, p.ID, ProductInput{Price: floatPtr(19.99), Stock: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Price)
	assert.EqualValues(t, 5, updated.Stock)
	assert.Equal(t, "Runner Tee", updated.Name)

	_, err = env.Catalog.UpdateProduct(ctx, 9999, ProductInput{Price: floatPtr(10)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_ListProducts_FilterAndPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	for i := 0; i < 5; i++ {
		in := validProductInput()
		in.Name = strPtr(fmt.Sprintf("tee-%d", i))
		_, err := env.Catalog.CreateProduct(ctx, in)
		require.NoError(t, err)
	}
	shoes := validProductInput()
	shoes.Name = strPtr("road-shoe")
	shoes.Category = strPtr(models.CategoryShoes)
	_, err := env.Catalog.CreateProduct(ctx, shoes)
	require.NoError(t, err)

	page, err := env.Catalog.ListProducts(ctx, 1, 3, "")
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	assert.Len(t, page.Products, 3)

	page, err = env.Catalog.ListProducts(ctx, 1, 10, models.CategoryShoes)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "road-shoe", page.Products[0].Name)
}

func TestCatalogService_ListProducts_HidesInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	_, err := env.Catalog.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	inactive := validProductInput()
	inactive.Name = strPtr("retired-tee")
	inactive.IsActive = boolPtr(false)
	_, err = env.Catalog.CreateProduct(ctx, inactive)
	require.NoError(t, err)

	page, err := env.Catalog.ListProducts(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestCatalogService_DeleteProduct_PrunesCartsAndWishlists(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	product := env.createProduct(t, "tee", 25.0, 50)

	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: product.ID, Quantity: 2, Size: "M", Color: "Red"}))
	require.NoError(t, env.Account.AddToWishlist(ctx, user.ID, product.ID))

	require.NoError(t, env.Catalog.DeleteProduct(ctx, product.ID))

	cart, err := env.Account.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	wishlist, err := env.Account.GetWishlist(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	err = env.Catalog.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
