package handler

import (
	"net/http"

	"kebab-shop-demo/internal/middleware"
	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListByAccount(ctx, middleware.AccountID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetByID(ctx, middleware.AccountID(c), c.Param("orderID"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}
