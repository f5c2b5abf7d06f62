package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridewear/storefront/internal/models"
)

func shippingAddr() models.Address {
	return models.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "USA"}
}

func TestOrderService_CreateOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	tee := env.createProduct(t, "tee", 25.0, 10)
	shoe := env.createProduct(t, "shoe", 80.0, 4)

	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: tee.ID, Quantity: 2, Size: "M", Color: "Red"}))
	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: shoe.ID, Quantity: 1, Size: "L", Color: "Black"}))

	order, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
		TotalAmount:     2*25.0 + 80.0 + 5.0 + 10.0 - 3.0,
		Tax:             5.0,
		Shipping:        10.0,
		Discount:        3.0,
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "card",
		Notes:           "leave at the door",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.Number)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 25.0, order.Items[0].UnitPrice)

	cart, err := env.Account.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	var storedTee, storedShoe models.Product
	require.NoError(t, env.DB.First(&storedTee, tee.ID).Error)
	require.NoError(t, env.DB.First(&storedShoe, shoe.ID).Error)
	assert.EqualValues(t, 8, storedTee.Stock)
	assert.EqualValues(t, 3, storedShoe.Stock)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")

	_, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
		TotalAmount:     10,
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "card",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_CreateOrder_TotalMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	tee := env.createProduct(t, "tee", 25.0, 10)

	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: tee.ID, Quantity: 2, Size: "M", Color: "Red"}))

	_, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
		TotalAmount:     1.0,
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "card",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// the failed attempt must not touch cart or stock
	cart, err := env.Account.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, tee.ID).Error)
	assert.EqualValues(t, 10, stored.Stock)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	tee := env.createProduct(t, "tee", 25.0, 1)

	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: tee.ID, Quantity: 3, Size: "M", Color: "Red"}))

	_, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
		TotalAmount:     75.0,
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "card",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	cart, err := env.Account.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, tee.ID).Error)
	assert.EqualValues(t, 1, stored.Stock)
}

func TestOrderService_GetUserOrders_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	tee := env.createProduct(t, "tee", 25.0, 100)

	var numbers []string
	for i := 0; i < 3; i++ {
		require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: tee.ID, Quantity: 1, Size: "M", Color: "Red"}))
		order, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
			TotalAmount:     25.0,
			ShippingAddress: shippingAddr(),
			PaymentMethod:   "card",
		})
		require.NoError(t, err)
		numbers = append(numbers, order.Number)
	}

	orders, err := env.Orders.GetUserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, numbers[2], orders[0].Number)
	require.NotEmpty(t, orders[0].Items)
	require.NotNil(t, orders[0].Items[0].Product)
}

func TestOrderService_UpdateOrderStatus_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to processing", models.OrderStatusPending, models.OrderStatusProcessing, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"processing to shipped", models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{"processing to cancelled", models.OrderStatusProcessing, models.OrderStatusCancelled, true},
		{"shipped to delivered", models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{"pending to delivered", models.OrderStatusPending, models.OrderStatusDelivered, false},
		{"shipped to cancelled", models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{"delivered to pending", models.OrderStatusDelivered, models.OrderStatusPending, false},
		{"cancelled to processing", models.OrderStatusCancelled, models.OrderStatusProcessing, false},
	}

	user := env.createUser(t, "bob@example.com")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &models.Order{
				Number:        tt.name,
				UserID:        user.ID,
				Status:        tt.from,
				TotalAmount:   10,
				PaymentMethod: "card",
			}
			require.NoError(t, env.DB.Create(order).Error)

			updated, err := env.Orders.UpdateOrderStatus(ctx, order.ID, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestOrderService_UpdateOrderStatus_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()

	_, err := env.Orders.UpdateOrderStatus(ctx, 1, "Teleported")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.Orders.UpdateOrderStatus(ctx, 9999, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_StatusChangeVisibleToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx()
	user := env.createUser(t, "bob@example.com")
	tee := env.createProduct(t, "tee", 25.0, 10)

	require.NoError(t, env.Account.AddToCart(ctx, user.ID, AddToCartInput{ProductID: tee.ID, Quantity: 1, Size: "M", Color: "Red"}))
	order, err := env.Orders.CreateOrder(ctx, user.ID, CreateOrderInput{
		TotalAmount:     25.0,
		ShippingAddress: shippingAddr(),
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	_, err = env.Orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)

	orders, err := env.Orders.GetUserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusProcessing, orders[0].Status)
}
