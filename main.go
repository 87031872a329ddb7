package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/SreekarSamrudh/e-shop-central/internal/api"
	"github.com/SreekarSamrudh/e-shop-central/internal/auth"
	"github.com/SreekarSamrudh/e-shop-central/internal/cache"
	"github.com/SreekarSamrudh/e-shop-central/internal/db"
	"github.com/SreekarSamrudh/e-shop-central/internal/metrics"
	"github.com/SreekarSamrudh/e-shop-central/internal/services"
	"github.com/SreekarSamrudh/e-shop-central/pkg/config"
	"github.com/SreekarSamrudh/e-shop-central/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.IsProduction())

	ctx := context.Background()
	appMetrics, meterProvider, err := metrics.InitMetrics(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down meter provider", "error", err)
		}
	}()

	database, err := db.NewDB(cfg.GetDSN(), cfg.OTELServiceName)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	schemaSQL, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Warn("could not read schema.sql, assuming schema exists", "error", err)
	} else if err := database.InitSchema(ctx, string(schemaSQL)); err != nil {
		log.Warn("could not initialize schema, assuming schema exists", "error", err)
	}

	ratingCache := cache.NewRatingCache(cfg.RedisAddr, appMetrics)
	defer ratingCache.Close()
	if ratingCache.Enabled() {
		log.Info("rating cache enabled", "redis_addr", cfg.RedisAddr)
	} else {
		log.Info("rating cache disabled, ratings computed per request")
	}

	authManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, cfg.BCryptCost)

	productService := services.NewProductService(database, appMetrics, ratingCache)
	cartService := services.NewCartService(database, appMetrics)
	orderService := services.NewOrderService(database, appMetrics)
	reviewService := services.NewReviewService(database, appMetrics, ratingCache)
	wishlistService := services.NewWishlistService(database, appMetrics)
	profileService := services.NewProfileService(database, appMetrics)
	userService := services.NewUserService(database, appMetrics, authManager, profileService)
	inventoryService := services.NewInventoryService(database, appMetrics)

	app := api.NewApp(cfg, database, appMetrics, authManager,
		productService, cartService, orderService, reviewService,
		wishlistService, profileService, userService, inventoryService)

	router := mux.NewRouter()
	app.SetupRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.AppPort, "otlp_endpoint", cfg.OTELExporterOTLPEndpoint)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
