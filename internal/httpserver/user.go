package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/stridewear/storefront/internal/middleware/auth"

	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/service"
	"github.com/stridewear/storefront/internal/util"
)

// UserHandler serves everything under /api/users: cart, wishlist,
// profile, preferences, account deletion and the admin user listing.
type UserHandler struct {
	account *service.AccountService
}

func NewUserHandler(account *service.AccountService) *UserHandler {
	return &UserHandler{account: account}
}

func (h *UserHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.account.GetCart(ctx, mwauth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("get_cart_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *UserHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_to_cart")

	var in service.AddToCartInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.account.AddToCart(ctx, mwauth.UserID(c), in); err != nil {
		if isClientError(err) {
			l.Warn("add_to_cart_failed", "status", 400, "product_id", in.ProductID, "error", err)
		} else {
			l.Error("add_to_cart_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	itemID := uint(util.ParseIntDefault(c.Param("itemId"), 0))
	if err := h.account.RemoveFromCart(ctx, mwauth.UserID(c), itemID); err != nil {
		logging.FromContext(ctx).Error("remove_from_cart_failed", "error", err)
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.account.GetWishlist(ctx, mwauth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("get_wishlist_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *UserHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_to_wishlist")

	var in struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.account.AddToWishlist(ctx, mwauth.UserID(c), in.ProductID); err != nil {
		if isClientError(err) {
			l.Warn("add_to_wishlist_failed", "status", 400, "product_id", in.ProductID, "error", err)
		} else {
			l.Error("add_to_wishlist_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	productID := uint(util.ParseIntDefault(c.Param("productId"), 0))
	if err := h.account.RemoveFromWishlist(ctx, mwauth.UserID(c), productID); err != nil {
		logging.FromContext(ctx).Error("remove_from_wishlist_failed", "error", err)
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.account.GetProfile(ctx, mwauth.UserID(c))
	if err != nil {
		logging.FromContext(ctx).Error("get_profile_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_profile")

	var in service.UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	user, err := h.account.UpdateProfile(ctx, mwauth.UserID(c), in)
	if err != nil {
		if isClientError(err) {
			l.Warn("update_profile_failed", "status", 400, "error", err)
		} else {
			l.Error("update_profile_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "change_password")

	var in service.ChangePasswordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.account.ChangePassword(ctx, mwauth.UserID(c), in); err != nil {
		if isClientError(err) {
			l.Warn("change_password_failed", "status", 400)
		} else {
			l.Error("change_password_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	ctx := c.Request().Context()

	var in service.UpdatePreferencesInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	prefs, err := h.account.UpdatePreferences(ctx, mwauth.UserID(c), in)
	if err != nil {
		logging.FromContext(ctx).Error("update_preferences_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *UserHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_account")

	if err := h.account.DeleteAccount(ctx, mwauth.UserID(c)); err != nil {
		l.Error("delete_account_failed", "error", err)
		return toHTTPError(err)
	}
	l.Info("account_deleted", "user_id", mwauth.UserID(c))
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	res, err := h.account.ListUsers(ctx, page, size)
	if err != nil {
		logging.FromContext(ctx).Error("list_users_failed", "error", err)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}
