package server

import (
	"net/http"

	"kebab-shop-demo/internal/handler"
	authmw "kebab-shop-demo/internal/middleware"
	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo            *echo.Echo
	authMiddleware  *authmw.AuthMiddleware
	authHandler     *handler.AuthHandler
	productHandler  *handler.ProductHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
}

func NewServer(
	authService service.AuthService,
	productService service.ProductService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	orderService service.OrderService,
	zaplog *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zaplog.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authMiddleware:  authmw.NewAuthMiddleware(authService),
		authHandler:     handler.NewAuthHandler(authService),
		productHandler:  handler.NewProductHandler(productService),
		cartHandler:     handler.NewCartHandler(cartService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		orderHandler:    handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)

	api.GET("/me", s.authHandler.Me)

	// -------- catalog --------
	api.GET("/products", s.productHandler.List)
	api.GET("/products/:productID", s.productHandler.Get)

	// -------- cart, scoped to the session account --------
	cart := api.Group("/cart", s.authMiddleware.Require())
	cart.GET("", s.cartHandler.Get)
	cart.POST("/items", s.cartHandler.AddItem)
	cart.PUT("/items/:productID", s.cartHandler.SetQuantity)
	cart.DELETE("/items/:productID", s.cartHandler.RemoveItem)
	cart.DELETE("", s.cartHandler.Clear)

	// -------- checkout and orders --------
	checkout := api.Group("/checkout", s.authMiddleware.Require())
	checkout.POST("/commitments", s.checkoutHandler.IssueCommitment)
	checkout.POST("", s.checkoutHandler.Redeem)

	orders := api.Group("/orders", s.authMiddleware.Require())
	orders.GET("", s.orderHandler.List)
	orders.GET("/:orderID", s.orderHandler.Get)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

// Handler exposes the router for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
