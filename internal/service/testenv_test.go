package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/config"
	"github.com/stridewear/storefront/internal/hash"
	"github.com/stridewear/storefront/internal/models"
	"github.com/stridewear/storefront/internal/repo"
)

const testAdminEmail = "admin@stridewear.test"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Auth    *AuthService
	Account *AccountService
	Catalog *CatalogService
	Orders  *OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	r := repo.New(db)
	return &testEnv{
		DB:      db,
		Repo:    r,
		Auth:    NewAuthService(r, nil, []byte("test-jwt-secret"), testAdminEmail),
		Account: NewAccountService(r),
		Catalog: NewCatalogService(r, nil),
		Orders:  NewOrderService(r, nil),
	}
}

func (env *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)
	user := &models.User{Name: "Test User", Email: email, PasswordHash: pwHash}
	require.NoError(t, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) createAdmin(t *testing.T) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &models.User{Name: "Admin", Email: testAdminEmail, PasswordHash: pwHash, IsAdmin: true}
	require.NoError(t, env.DB.Create(admin).Error)
	return admin
}

func (env *testEnv) createProduct(t *testing.T, name string, price float64, stock uint) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Category:    models.CategoryTShirts,
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Red", "Black"},
		Image:       "/img/" + name + ".jpg",
		Stock:       stock,
		IsActive:    true,
	}
	require.NoError(t, env.DB.Create(p).Error)
	return p
}

func testCtx() context.Context {
	return context.Background()
}
