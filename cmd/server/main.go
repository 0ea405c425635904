package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Sportsbook API
// @version         0.1.0
// @description     LMSR-priced prediction markets: pricing, betting, cash-out and settlement.
// @host            localhost:8080
// @BasePath        /
// @schemes         http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"sportsbook/internal/config"
	cronrunner "sportsbook/internal/cron"
	"sportsbook/internal/db"
	"sportsbook/internal/handler"
	"sportsbook/internal/logger"
	gormrepository "sportsbook/internal/repository/gorm"
	"sportsbook/internal/service"
	"sportsbook/internal/ws"

	_ "sportsbook/docs"
)

func main() {
	cfgPath := os.Getenv("SB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("SB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := dbConn.SetTimezone(context.Background(), cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := dbConn.AutoMigrate(); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	hub := ws.NewHub(logger)

	// One lock set for everything that writes markets: placements and
	// resolutions on the same market must serialize against each other.
	marketLocks := service.NewMarketLocks()

	marketSvc := &service.MarketService{Repo: store, Logger: logger, Cfg: cfg.Market}
	bettingSvc := service.NewBettingService(store, logger, cfg.Market, hub, marketLocks)
	settlementSvc := service.NewSettlementService(store, logger, hub, marketLocks)
	accountSvc := &service.AccountService{Repo: store, Logger: logger}
	recorder := &service.OddsRecorder{Repo: store, Logger: logger, Retention: cfg.Market.SnapshotRetention}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	marketHandler := &handler.MarketHandler{Markets: marketSvc, Betting: bettingSvc, Hub: hub}
	marketHandler.Register(engine)
	betHandler := &handler.BetHandler{Betting: bettingSvc}
	betHandler.Register(engine)
	settlementHandler := &handler.SettlementHandler{Settlement: settlementSvc}
	settlementHandler.Register(engine)
	accountHandler := &handler.AccountHandler{Accounts: accountSvc}
	accountHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		if _, err := cronRunner.Add("odds_snapshot", cfg.Cron.OddsSnapshot, recorder.SnapshotOnce); err != nil {
			logger.Warn("cron register odds snapshot failed", zap.Error(err))
		}
		if _, err := cronRunner.Add("snapshot_purge", cfg.Cron.SnapshotPurge, recorder.PurgeOnce); err != nil {
			logger.Warn("cron register snapshot purge failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
