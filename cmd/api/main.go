package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/willotis/tamarind-drinks-app/internal/config"
	"github.com/willotis/tamarind-drinks-app/internal/db"
	"github.com/willotis/tamarind-drinks-app/internal/httpserver"
	cartitemrepo "github.com/willotis/tamarind-drinks-app/internal/repository/cartitem"
	categoryrepo "github.com/willotis/tamarind-drinks-app/internal/repository/category"
	orderrepo "github.com/willotis/tamarind-drinks-app/internal/repository/order"
	productrepo "github.com/willotis/tamarind-drinks-app/internal/repository/product"
	cartsvc "github.com/willotis/tamarind-drinks-app/internal/service/cart"
	categorysvc "github.com/willotis/tamarind-drinks-app/internal/service/category"
	ordersvc "github.com/willotis/tamarind-drinks-app/internal/service/order"
	productsvc "github.com/willotis/tamarind-drinks-app/internal/service/product"
	sessionsvc "github.com/willotis/tamarind-drinks-app/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	cartItemRepo := cartitemrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	productService := productsvc.New(productRepo)
	categoryService := categorysvc.New(categoryRepo)
	cartService := cartsvc.New(cartItemRepo, productRepo)
	orderService := ordersvc.New(orderRepo)
	sessionService := sessionsvc.New()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		ProductSvc:  productService,
		CategorySvc: categoryService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		SessionSvc:  sessionService,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
