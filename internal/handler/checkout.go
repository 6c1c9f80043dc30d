package handler

import (
	"net/http"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/middleware"
	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) IssueCommitment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.IssueCommitmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	commitment, err := h.checkoutService.IssueCommitment(ctx, middleware.AccountID(c), req.ProductID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, commitment)
}

func (h *CheckoutHandler) Redeem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RedeemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.Redeem(ctx, middleware.AccountID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}
