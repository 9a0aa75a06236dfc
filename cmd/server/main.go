package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/api"
	"github.com/jengzang/disease-risk-backend-go/internal/config"
	"github.com/jengzang/disease-risk-backend-go/internal/database"
	"github.com/jengzang/disease-risk-backend-go/internal/handler"
	"github.com/jengzang/disease-risk-backend-go/internal/logger"
	"github.com/jengzang/disease-risk-backend-go/internal/middleware"
	"github.com/jengzang/disease-risk-backend-go/internal/repository"
	"github.com/jengzang/disease-risk-backend-go/internal/risk"
	"github.com/jengzang/disease-risk-backend-go/internal/service"
)

// 示例数据条数
const sampleDataCount = 50

func main() {
	// 加载配置
	cfg := config.Load()

	// 日志初始化
	l := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		l.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	entries := repository.NewOccurrenceRepository(db)
	predictions := repository.NewRiskPredictionRepository(db)

	if cfg.SeedSampleData {
		seed := risk.NewSyntheticGenerator(0).Generate(sampleDataCount, time.Now())
		n, err := entries.SeedIfEmpty(context.Background(), seed)
		if err != nil {
			l.Warn("failed to seed sample data", "error", err)
		} else if n > 0 {
			l.Info("sample data seeded", "count", n)
		}
	}

	// 记录源：远程优先，本地兜底
	var sources []repository.NamedSource
	var mirror service.EntryMirror
	remotes := make(map[string]handler.Pinger)
	if cfg.RemoteRecordsURL != "" {
		remote := repository.NewRemoteRecordSource(cfg.RemoteRecordsURL, cfg.RemoteRecordsKey, 10*time.Second)
		sources = append(sources, remote)
		remotes[remote.Name()] = remote
	}
	if cfg.DatabaseURL != "" {
		pg, err := repository.NewPostgresOccurrenceRepository(cfg.DatabaseURL)
		if err != nil {
			l.Warn("postgres disabled", "error", err)
		} else {
			defer pg.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := pg.EnsureSchema(ctx); err != nil {
				l.Warn("postgres schema check failed", "error", err)
			}
			cancel()
			sources = append(sources, pg)
			remotes[pg.Name()] = pg
			mirror = pg
		}
	}
	sources = append(sources, entries)
	records := repository.NewChainSource(l, sources...)

	// 风险模型
	model := risk.NewModel(records, cfg.ModelPath, risk.WithLogger(l))
	if !model.IsTrained() {
		go model.Train(context.Background())
	}

	occurrenceService := service.NewOccurrenceService(entries, mirror, l)
	riskService := service.NewRiskService(model, entries, predictions, cfg.RetrainOnRead, l)
	statsService := service.NewStatsService(entries)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		defer limiter.Close()
	}

	// 初始化路由
	router := api.SetupRouter(api.Handlers{
		Occurrence: handler.NewOccurrenceHandler(occurrenceService),
		Risk:       handler.NewRiskHandler(riskService),
		Stats:      handler.NewStatsHandler(statsService),
		Health:     handler.NewHealthHandler(entries, remotes),
	}, limiter, l)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		l.Info("server starting", "addr", cfg.Port, "model_state", model.State())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// 优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	l.Info("received shutdown signal", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error("server shutdown error", "error", err)
	}
	l.Info("server stopped")
}
