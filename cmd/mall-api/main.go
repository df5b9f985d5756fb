package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jkwan/gomall/internal/cache"
	"github.com/jkwan/gomall/internal/cart"
	"github.com/jkwan/gomall/internal/config"
	"github.com/jkwan/gomall/internal/order"
	"github.com/jkwan/gomall/internal/product"
	"github.com/jkwan/gomall/internal/storage"
	"github.com/jkwan/gomall/internal/user"

	_ "github.com/jkwan/gomall/docs"
)

// @title        gomall API
// @version      1.0
// @description  E-commerce backend: catalog, cart and order placement.
// @BasePath     /
func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := storage.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[main] postgres: %v", err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[main] redis unavailable, continuing without cache: %v", err)
			rdb = nil
		}
	}

	productRepo := product.NewPGRepo(pool)
	userRepo := user.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)
	cartRepo := cart.NewPGRepo(pool)

	deps := &appDeps{
		products:     productRepo,
		orders:       order.NewService(pool, userRepo, product.NewPGLedger(), orderRepo),
		users:        user.NewService(userRepo, cfg.JWTSecret),
		carts:        cart.NewService(cartRepo, productRepo),
		productCache: cache.NewProductCache(rdb, cfg.ProductCacheTTL),
		rdb:          rdb,
		jwtSecret:    cfg.JWTSecret,
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(deps),
	}

	go func() {
		log.Printf("[main] mall-api listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
