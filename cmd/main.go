package main

import (
	"context"
	"fmt"
	"os"

	dataagg "github.com/yungbote/shopcore-backend/internal/data/aggregates"
	"github.com/yungbote/shopcore-backend/internal/data/db"
	"github.com/yungbote/shopcore-backend/internal/data/query"
	"github.com/yungbote/shopcore-backend/internal/data/repos"
	"github.com/yungbote/shopcore-backend/internal/handlers"
	"github.com/yungbote/shopcore-backend/internal/observability"
	"github.com/yungbote/shopcore-backend/internal/platform/envutil"
	"github.com/yungbote/shopcore-backend/internal/platform/logger"
	"github.com/yungbote/shopcore-backend/internal/server"
	"github.com/yungbote/shopcore-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()
	if err := db.AutoMigrateAll(thePG); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	if err := db.EnsureOrderIndexes(thePG); err != nil {
		log.Warn("Postgres index setup failed", "error", err)
	}

	// Metrics
	metrics := observability.Init(log)
	if metrics != nil {
		metricsAddr := envutil.GetEnv("METRICS_ADDR", "", log)
		metrics.StartServer(context.Background(), log, metricsAddr)
		metrics.StartPostgresCollector(context.Background(), log, thePG)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	memberRepo := repos.NewMemberRepo(thePG, log)
	itemRepo := repos.NewItemRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	orderLineRepo := repos.NewOrderLineRepo(thePG, log)
	deliveryRepo := repos.NewDeliveryRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)

	// Aggregates + projection engine
	orderAggregate := dataagg.NewOrderAggregate(dataagg.OrderAggregateDeps{
		Base: dataagg.BaseDeps{
			DB:    thePG,
			Log:   log,
			Hooks: dataagg.NewObservabilityHooks(metrics),
		},
		Members:    memberRepo,
		Items:      itemRepo,
		Orders:     orderRepo,
		Lines:      orderLineRepo,
		Deliveries: deliveryRepo,
	})
	projectionEngine := query.NewEngine(thePG, log, query.NewObservabilityHooks(metrics))

	// Services
	log.Info("Setting up Services from main...")
	memberService := services.NewMemberService(thePG, log, memberRepo)
	itemService := services.NewItemService(thePG, log, itemRepo)
	categoryService := services.NewCategoryService(thePG, log, categoryRepo, itemRepo)
	orderService := services.NewOrderService(thePG, log, orderAggregate, projectionEngine)

	// Handlers
	log.Info("Setting up handlers from main...")
	orderHandler := handlers.NewOrderHandler(log, orderService)
	memberHandler := handlers.NewMemberHandler(log, memberService)
	itemHandler := handlers.NewItemHandler(log, itemService)
	categoryHandler := handlers.NewCategoryHandler(log, categoryService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Metrics:         metrics,
		OrderHandler:    orderHandler,
		MemberHandler:   memberHandler,
		ItemHandler:     itemHandler,
		CategoryHandler: categoryHandler,
	})

	port := envutil.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
