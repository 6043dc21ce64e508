package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendaro/storefront-service/internal/config"
	"github.com/vendaro/storefront-service/internal/delivery/http/handlers"
	"github.com/vendaro/storefront-service/internal/delivery/http/middleware"
	"github.com/vendaro/storefront-service/internal/domain"
	publisher "github.com/vendaro/storefront-service/internal/infrastructure/kafka"
	"github.com/vendaro/storefront-service/internal/infrastructure/metrics"
	"github.com/vendaro/storefront-service/internal/infrastructure/migrate"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres"
	"github.com/vendaro/storefront-service/internal/infrastructure/postgres/repository"
	"github.com/vendaro/storefront-service/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)
	if cfg.Migrations.Enabled {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	storeRepo := repository.NewDefaultStoreRepository(db)
	catalogRepo := repository.NewDefaultCatalogRepository(db)
	cartRepo := repository.NewDefaultCartRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	buyerRepo := repository.NewDefaultBuyerRepository(db)

	orderNumber, err := usecase.NewOrderNumberGenerator()
	if err != nil {
		log.Fatalf("failed to init order number generator: %v", err)
	}

	var events domain.OrderEvents
	if cfg.Kafka.Enabled {
		pub := publisher.NewDefaultKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer pub.Close()
		events = pub
	}

	storefrontMetrics := metrics.NewStorefrontMetrics()

	tenants := usecase.NewTenantRegistry(storeRepo, cfg.Tenant.AllowFallback)
	pricing := usecase.NewPricingResolver()
	cartService := usecase.NewCartService(cartRepo, catalogRepo, pricing)
	cartService.Metrics = storefrontMetrics

	orderService := usecase.NewOrderService(orderRepo, catalogRepo, events, orderNumber)
	orderService.Metrics = storefrontMetrics

	cartHandler := handlers.NewCartHandler(cartService, buyerRepo)
	orderHandler := handlers.NewOrderHandler(orderService, cartService, buyerRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	adminHandler := handlers.NewAdminHandler(catalogRepo, storeRepo, buyerRepo)

	app := fiber.New(fiber.Config{
		AppName: "Vendaro Storefront",
	})
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", middleware.ResolveTenant(tenants))

	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:slug", catalogHandler.GetBySlug)

	api.Get("/cart", cartHandler.GetCart)
	api.Delete("/cart", cartHandler.Clear)
	api.Post("/cart/lines", cartHandler.AddLine)
	api.Patch("/cart/lines/:lineID", cartHandler.UpdateQuantity)
	api.Delete("/cart/lines/:lineID", cartHandler.RemoveLine)
	api.Post("/cart/merge", cartHandler.Merge)

	api.Post("/orders", orderHandler.Checkout)
	api.Get("/orders", orderHandler.ListMine)
	api.Get("/orders/:number", orderHandler.GetByNumber)

	// Back-office status transitions. Access control is enforced by the
	// gateway in front of this service.
	admin := api.Group("/admin")
	admin.Post("/orders/:number/paid", orderHandler.MarkPaid)
	admin.Post("/orders/:number/shipped", orderHandler.MarkShipped)
	admin.Post("/orders/:number/delivered", orderHandler.MarkDelivered)
	admin.Post("/orders/:number/cancel", orderHandler.Cancel)
	admin.Post("/products", adminHandler.CreateProduct)
	admin.Put("/products/:id", adminHandler.UpdateProduct)
	admin.Delete("/products/:id", adminHandler.DeleteProduct)
	admin.Post("/products/:id/restore", adminHandler.RestoreProduct)
	admin.Put("/settings", adminHandler.UpdateSettings)
	admin.Post("/buyers", adminHandler.CreateBuyer)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("failed to start http server: %v", err)
		}
	}()
	slog.Info("storefront service started", "addr", addr, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		slog.Error("http shutdown", "error", err)
	}
}
