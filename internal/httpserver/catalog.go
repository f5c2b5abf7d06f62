package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/service"
	"github.com/stridewear/storefront/internal/util"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	res, err := h.catalog.ListProducts(ctx, page, size, c.QueryParam("category"))
	if err != nil {
		logging.FromContext(ctx).Error("list_products_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id := uint(util.ParseIntDefault(c.Param("id"), 0))
	p, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		if !isClientError(err) {
			logging.FromContext(ctx).Error("get_product_failed", "error", err)
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.catalog.CreateProduct(ctx, in)
	if err != nil {
		if isClientError(err) {
			l.Warn("create_product_failed", "status", 400, "error", err)
		} else {
			l.Error("create_product_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("product_created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_product")

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id := uint(util.ParseIntDefault(c.Param("id"), 0))
	p, err := h.catalog.UpdateProduct(ctx, id, in)
	if err != nil {
		if isClientError(err) {
			l.Warn("update_product_failed", "status", 400, "product_id", id, "error", err)
		} else {
			l.Error("update_product_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id := uint(util.ParseIntDefault(c.Param("id"), 0))
	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		if !isClientError(err) {
			l.Error("delete_product_failed", "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("product_deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
