package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "signup")

	var in service.SignupInput
	if err := c.Bind(&in); err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "bad_body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := h.auth.Signup(ctx, in)
	if err != nil {
		if isClientError(err) {
			l.Warn("signup_failed", "status", 400, "error", err)
		} else {
			l.Error("signup_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("signup_ok", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var in service.LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := h.auth.Login(ctx, in)
	if err != nil {
		if isClientError(err) {
			l.Warn("login_failed", "status", 400, "email", in.Email)
		} else {
			l.Error("login_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_login")

	var in service.LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	res, err := h.auth.AdminLogin(ctx, in)
	if err != nil {
		if isClientError(err) {
			l.Warn("admin_login_failed", "status", 400, "email", in.Email)
		} else {
			l.Error("admin_login_failed", "status", 500, "error", err)
		}
		return toHTTPError(err)
	}
	l.Info("admin_login_ok", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, res)
}
