package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hpp-dashboard/internal/cache"
	"go-hpp-dashboard/internal/config"
	"go-hpp-dashboard/internal/handler"
	"go-hpp-dashboard/internal/insight"
	"go-hpp-dashboard/internal/middleware"
	"go-hpp-dashboard/internal/model"
	"go-hpp-dashboard/internal/repository"
	"go-hpp-dashboard/internal/service"
	"go-hpp-dashboard/internal/ws"
	"go-hpp-dashboard/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{},
		&model.Business{},
		&model.Product{},
		&model.InventoryItem{},
		&model.Sale{},
		&model.CategoryBudget{},
	)

	// 3. Insight generator: AI commentary when configured, static fallbacks
	// otherwise. Redis memoizes commentary for a short TTL only.
	insights := buildInsightGenerator(cfg)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	budgetRepo := repository.NewBudgetRepo(db)

	tenantService := service.NewTenantService(userRepo, cfg.DemoUserEmail, cfg.DemoUserName, cfg.DemoBusinessName)
	invService := service.NewInventoryService(productRepo, inventoryRepo, budgetRepo, wsHub)
	salesService := service.NewSalesService(saleRepo, wsHub)
	budgetService := service.NewBudgetService(budgetRepo)
	dashService := service.NewDashboardService(productRepo, saleRepo)
	pricingService := service.NewPricingService(insights)
	csvService := service.NewCSVService(productRepo)

	invHandler := handler.NewInventoryHandler(invService)
	salesHandler := handler.NewSalesHandler(salesService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	dashHandler := handler.NewDashboardHandler(dashService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	productHandler := handler.NewProductHandler(csvService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "HPP Dashboard v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1", middleware.WithTenant(tenantService))

	// Dashboard
	api.Get("/dashboard/stats", dashHandler.GetStats)
	api.Get("/analytics", dashHandler.GetAnalytics)

	// Inventory
	api.Get("/inventory", invHandler.GetInventory)
	api.Post("/inventory", invHandler.CreateInventory)
	api.Put("/inventory/:id", invHandler.UpdateInventory)

	// Sales
	api.Get("/sales", salesHandler.GetSales)
	api.Post("/sales", salesHandler.CreateSale)

	// Budgets
	api.Get("/budgets", budgetHandler.GetBudgets)
	api.Post("/budgets", budgetHandler.UpsertBudget)

	// Pricing & projections
	api.Post("/optimize-prices", pricingHandler.OptimizePrices)
	api.Post("/business-projection", pricingHandler.BusinessProjection)
	api.Post("/competitor-analysis", pricingHandler.CompetitorAnalysis)
	api.Post("/competitors/analyze", pricingHandler.SimulateCompetitors)

	// Products: CSV round-trip + recent list
	api.Get("/products/recent", dashHandler.GetRecentProducts)
	api.Get("/products/export", productHandler.ExportCSV)
	api.Post("/products/import", productHandler.ImportCSV)
	api.Get("/products/template", productHandler.DownloadTemplate)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// buildInsightGenerator wires the optional AI stack: no base URL means every
// caller takes its static fallback path; no Redis means commentary is simply
// regenerated per request.
func buildInsightGenerator(cfg config.Config) insight.Generator {
	if cfg.InsightBaseURL == "" {
		log.Println("Insight service not configured, using static fallbacks")
		return insight.Unavailable{}
	}

	client := insight.NewClient(cfg.InsightBaseURL, cfg.InsightAPIKey, cfg.InsightModel, cfg.InsightTimeout)

	var store cache.InsightCache = cache.NoopInsightCache{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisInsightCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("Warning: Redis unreachable (%v), insight cache disabled", err)
		} else {
			store = redisCache
			log.Println("Insight cache backed by Redis")
		}
	}

	ttl := time.Duration(cfg.InsightCacheSeconds) * time.Second
	return insight.NewCachedGenerator(client, store, ttl)
}
