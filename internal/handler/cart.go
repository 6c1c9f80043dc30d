package handler

import (
	"net/http"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/middleware"
	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	view, err := h.cartService.Materialize(ctx, middleware.AccountID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	accountID := middleware.AccountID(c)
	if err := h.cartService.AddLine(ctx, accountID, req.ProductID, req.Quantity); err != nil {
		return httpError(err)
	}

	view, err := h.cartService.Materialize(ctx, accountID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SetCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	accountID := middleware.AccountID(c)
	if err := h.cartService.SetQuantity(ctx, accountID, c.Param("productID"), req.Quantity); err != nil {
		return httpError(err)
	}

	view, err := h.cartService.Materialize(ctx, accountID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.RemoveLine(ctx, middleware.AccountID(c), c.Param("productID")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.AccountID(c)); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
