package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/stridewear/storefront/internal/middleware/auth"

	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/service"
	"github.com/stridewear/storefront/internal/util"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_order")

	var in service.CreateOrderInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	order, err := h.orders.CreateOrder(ctx, mwauth.UserID(c), in)
	if err != nil {
		if isClientError(err) {
			l.Warn("create_order_failed", "status", 400, "error", err)
		} else {
			l.Error("create_order_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("order_created", "order_id", order.ID, "number", order.Number)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := h.orders.GetUserOrders(ctx, mwauth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("get_user_orders_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	res, err := h.orders.GetAllOrders(ctx, page, size)
	if err != nil {
		logging.FromContext(ctx).Error("get_all_orders_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_order_status")

	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id := uint(util.ParseIntDefault(c.Param("id"), 0))
	order, err := h.orders.UpdateOrderStatus(ctx, id, in.Status)
	if err != nil {
		if isClientError(err) {
			l.Warn("update_order_status_failed", "order_id", id, "status", in.Status, "error", err)
		} else {
			l.Error("update_order_status_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("order_status_updated", "order_id", id, "status", in.Status)
	return c.JSON(http.StatusOK, order)
}
