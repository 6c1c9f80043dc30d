package handler

import (
	"net/http"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/middleware"
	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	profile, err := h.authService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.authService.EndSession(ctx, middleware.TokenFromRequest(c)); err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:   middleware.TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.authService.Resolve(ctx, middleware.TokenFromRequest(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dto.Profile{
		ID:      account.ID,
		Email:   account.Email,
		Name:    account.Name,
		Phone:   account.Phone,
		Address: account.Address,
		Balance: account.Balance,
	})
}
