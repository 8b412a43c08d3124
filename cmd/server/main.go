package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/langchou/rentgazer/internal/api/handlers"
	"github.com/langchou/rentgazer/internal/api/tables"
	"github.com/langchou/rentgazer/internal/catalog"
	"github.com/langchou/rentgazer/internal/config"
	"github.com/langchou/rentgazer/internal/repository"
	"github.com/langchou/rentgazer/internal/service"
	"github.com/langchou/rentgazer/pkg/ws"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer logger.Sync()

	logger.Info("Starting Rentgazer",
		zap.String("port", cfg.ServerPort),
		zap.String("data_source", cfg.DataSource),
	)

	// 创建 context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 创建数据源
	fetcher, closeFetcher, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create data source", zap.Error(err))
	}
	defer closeFetcher()

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run(ctx)

	// 创建目录服务
	catalogService := service.NewCatalogService(logger, fetcher, cfg.DataSource, cfg.FetchLimit)

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(logger, catalogService, wsHub, originChecker(cfg.CORSAllowedOrigins))

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))

	// 注册路由
	handler.RegisterRoutes(router)

	// 启动 HTTP 服务器
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", server.Addr))

	// 启动时加载一次目录；失败只记录并提示用户，不重试，服务继续运行
	go func() {
		if err := catalogService.Load(ctx); err != nil {
			logger.Error("Catalog unavailable for this run", zap.Error(err))
			wsHub.Broadcast(ws.EventCatalogFailed)
			return
		}
		wsHub.Broadcast(ws.EventCatalogReady)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger 初始化日志
func initLogger(debug bool) *zap.Logger {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	logger, _ := config.Build()
	return logger
}

// newFetcher 按配置创建数据源
func newFetcher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.Fetcher, func(), error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Database migrated successfully")
		return repository.NewFetcher(db), db.Close, nil
	default:
		logger.Info("Using tables API", zap.String("host", cfg.CatalogAPIHost))
		return tables.NewClient(cfg.CatalogAPIHost, cfg.FetchTimeout), func() {}, nil
	}
}

// corsMiddleware CORS 中间件
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// originChecker WebSocket 来源校验，与 CORS 配置一致
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
