package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/events"
	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/models"
	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/util"
)

type OrderService struct {
	repo     *repo.GormRepo
	producer *events.Producer
}

func NewOrderService(r *repo.GormRepo, p *events.Producer) *OrderService {
	return &OrderService{repo: r, producer: p}
}

// statusTransitions is the forward-only order lifecycle. Cancellation
// is possible until the parcel leaves the warehouse.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

type CreateOrderInput struct {
	TotalAmount     float64        `json:"total_amount"`
	Tax             float64        `json:"tax"`
	Shipping        float64        `json:"shipping"`
	Discount        float64        `json:"discount"`
	ShippingAddress models.Address `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
	Notes           string         `json:"notes"`
}

// CreateOrder snapshots the caller's cart into an order. The quoted
// total is recomputed server-side and must match to the cent.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, in CreateOrderInput) (*models.Order, error) {
	v := newValidationError()
	if strings.TrimSpace(in.PaymentMethod) == "" {
		v.add("payment_method", "is required")
	}
	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" {
		v.add("shipping_address", "street and city are required")
	}
	if !v.ok() {
		return nil, v
	}

	cart, err := s.repo.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart) == 0 {
		v.add("cart", "is empty")
		return nil, v
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		if line.Product == nil {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		subtotal += line.Product.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			UnitPrice: line.Product.Price,
		})
	}

	expected := subtotal + in.Tax + in.Shipping - in.Discount
	if cents(expected) != cents(in.TotalAmount) {
		v.add("total_amount", fmt.Sprintf("expected %.2f", expected))
		return nil, v
	}

	order := &models.Order{
		Number:          uuid.NewString(),
		UserID:          userID,
		OrderedAt:       time.Now().UTC(),
		Status:          models.OrderStatusPending,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		Discount:        in.Discount,
		Items:           items,
	}
	if err := s.repo.PlaceOrder(ctx, order); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			v.add("items", "insufficient stock")
			return nil, v
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.publishOrderEvent(ctx, "order_created", order)
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.repo.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

type OrderPage struct {
	Orders []models.Order `json:"orders"`
	Page   int            `json:"page"`
	Size   int            `json:"size"`
	Total  int64          `json:"total"`
}

func (s *OrderService) GetAllOrders(ctx context.Context, page, size int) (*OrderPage, error) {
	offset, limit := util.Calculate(page, size)
	orders, total, err := s.repo.ListOrders(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &OrderPage{Orders: orders, Page: page, Size: limit, Total: total}, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) (*models.Order, error) {
	if _, known := statusTransitions[newStatus]; !known {
		v := newValidationError()
		v.add("status", "must be one of "+strings.Join(models.OrderStatuses(), ", "))
		return nil, v
	}

	order, err := s.repo.OrderByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}

	if !transitionAllowed(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, newStatus)
	}
	if err := s.repo.UpdateOrderStatus(ctx, orderID, order.Status, newStatus); err != nil {
		if errors.Is(err, repo.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: order moved to a different status", ErrInvalidTransition)
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	order.Status = newStatus

	s.publishOrderEvent(ctx, "order_status_changed", order)
	return order, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *models.Order) {
	err := s.producer.Publish(ctx, events.TopicOrderEvents, order.Number, eventType, map[string]any{
		"order_id": order.ID,
		"number":   order.Number,
		"user_id":  order.UserID,
		"status":   order.Status,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
