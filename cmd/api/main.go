package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kebab-shop-demo/internal/client"
	"kebab-shop-demo/internal/config"
	"kebab-shop-demo/internal/logger"
	"kebab-shop-demo/internal/repository"
	"kebab-shop-demo/internal/server"
	"kebab-shop-demo/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	zaplog, err := logger.NewZapLog(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer zaplog.Sync()

	// The signing key lives only in process memory from here on; it is
	// never logged and never leaves through a response payload.
	signingKey, err := hex.DecodeString(cfg.Checkout.SigningKey)
	if err != nil {
		zaplog.Fatal("checkout signing key is not valid hex")
	}

	db, err := client.InitSqliteClient(cfg.Database.Path)
	if err != nil {
		zaplog.Fatal("init database", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	commitmentRepo := repository.NewCommitmentRepository(db)

	if err := productRepo.Seed(context.Background()); err != nil {
		zaplog.Fatal("seed catalog", zap.Error(err))
	}

	authService := service.NewAuthService(accountRepo, sessionRepo, cfg.Session.TTL, cfg.Account.StartingBalance)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(db, cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo)
	checkoutService, err := service.NewCheckoutService(
		db,
		signingKey,
		cfg.Checkout.CommitmentTTL,
		accountRepo,
		productRepo,
		cartRepo,
		orderRepo,
		commitmentRepo,
	)
	if err != nil {
		zaplog.Fatal("init checkout service", zap.Error(err))
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(authService, productService, cartService, checkoutService, orderService, zaplog)

	zaplog.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			zaplog.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	zaplog.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		zaplog.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
