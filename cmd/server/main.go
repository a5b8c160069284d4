package main

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

	"zellalite/internal/auth"
	"zellalite/internal/config"
	cronrunner "zellalite/internal/cron"
	"zellalite/internal/db"
	"zellalite/internal/handler"
	"zellalite/internal/logger"
	gormrepository "zellalite/internal/repository/gorm"
	"zellalite/internal/service"

	_ "zellalite/docs"
)

// @title ZellaLite API
// @version 1.0
// @description Trading journal backend.
// @BasePath /
func main() {
	cfgPath := os.Getenv("ZL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if raw := os.Getenv("ZL_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
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
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	jwtSigner := auth.New(cfg.Auth)

	userSvc := &service.UserService{Repo: store}
	tradeSvc := &service.TradeService{Repo: store, Logger: logger}
	tagSvc := &service.TagService{Repo: store}
	journalSvc := &service.JournalService{Repo: store, Trades: tradeSvc}
	attachmentSvc := &service.AttachmentService{
		Repo:   store,
		Trades: tradeSvc,
		Config: cfg.Upload,
		Logger: logger,
	}
	importSvc := &service.ImportService{Trades: tradeSvc, Logger: logger}
	metricsSvc := &service.MetricsService{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.Server.AllowedOrigins))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	authHandler := &handler.AuthHandler{Users: userSvc, JWT: jwtSigner}
	authHandler.Register(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := engine.Group("", auth.Middleware(jwtSigner))
	(&handler.UserHandler{Users: userSvc}).Register(authed)
	(&handler.TradeHandler{Trades: tradeSvc, Importer: importSvc, Logger: logger}).Register(authed)
	(&handler.TagHandler{Tags: tagSvc}).Register(authed)
	(&handler.JournalHandler{Journal: journalSvc}).Register(authed)
	(&handler.AttachmentHandler{Attachments: attachmentSvc}).Register(authed)
	(&handler.MetricsHandler{Metrics: metricsSvc}).Register(authed)
	(&handler.TemplateHandler{}).Register(authed)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err := cronRunner.Add(cfg.Cron.MetricsSnapshot, func(ctx context.Context) {
			day := time.Now().UTC().AddDate(0, 0, -1)
			if err := metricsSvc.SnapshotAll(ctx, day); err != nil {
				logger.Warn("metrics snapshot failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register metrics snapshot failed", zap.Error(err))
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

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if wildcard {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
