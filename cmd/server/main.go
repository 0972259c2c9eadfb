package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-api/internal/config"
	controllers "inventory-api/internal/controllers/http"
	mmysql "inventory-api/internal/infra/mysql"
	"inventory-api/internal/infra/rabbitmq"
	"inventory-api/internal/metrics"
	mysqlrepo "inventory-api/internal/repository/mysql"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar().With("service", cfg.ServiceName)

	db, err := mmysql.New(cfg.MySQLDSN)
	if err != nil {
		sugar.Fatalw("db: connect", "error", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	defer redisClient.Close()

	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.Exchange)
	if err != nil {
		sugar.Fatalw("failed to init publisher", "error", err)
	}
	defer publisher.Close()

	reg := metrics.NewRegistry()

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	reportRepo := mysqlrepo.NewReportRepository(db)

	orderSvc := services.NewOrderService(orderRepo, publisher, reg, sugar)
	productSvc := services.NewProductService(productRepo, publisher, reg, sugar)
	dashboardSvc := services.NewDashboardService(reportRepo, sugar)

	orderSvc.SetRedisClient(redisClient)
	productSvc.SetRedisClient(redisClient)
	dashboardSvc.SetRedisClient(redisClient)

	handler := controllers.NewHandler(orderSvc, productSvc, dashboardSvc, sugar)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(controllers.RequestLogger(sugar))
	r.Use(controllers.RequestMetrics(reg))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(reg.Handler()))
	handler.RegisterRoutes(r)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		sugar.Infow("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("listen", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	sugar.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("shutdown", "error", err)
	}
}
