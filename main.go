package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // 导入 swag
	"golang.org/x/sync/errgroup"

	"profile_finder/config"
	"profile_finder/db"
	_ "profile_finder/docs" // 导入 swagger 文档
	"profile_finder/handlers"
	"profile_finder/logger"
	"profile_finder/repository"
	"profile_finder/scheduler"
	"profile_finder/services"
)

// shutdownTimeout 优雅退出的最长等待时间
const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Error("初始化会话存储失败", "store", cfg.Session.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	searcher := services.NewWebhookClient(cfg.Webhook.URL,
		time.Duration(cfg.Webhook.TimeoutSec)*time.Second,
		int64(cfg.Webhook.MaxConcurrent))
	page := services.NewSearchPage(repo, searcher, services.PageOptions{
		Selectable:  cfg.Results.Selectable,
		OrphanAfter: time.Duration(cfg.Session.OrphanAfterSec) * time.Second,
	})
	logger.Info("搜索服务已就绪", "webhook", cfg.Webhook.URL, "selectable", cfg.Results.Selectable)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, cfg, page, searcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Timeouts.RequestSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeouts.ResponseSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeouts.IdleSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("服务器启动", "address", cfg.Server.Addr)
		logger.Info("Swagger文档可访问", "url", fmt.Sprintf("http://%s/swagger/index.html", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 会话清理
	g.Go(func() error {
		return scheduler.NewScheduler(cfg, repo, page).Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("收到退出信号，开始关闭服务")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("关闭HTTP服务失败", "error", err)
		}
		return page.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("服务异常退出", "error", err)
		os.Exit(1)
	}
	logger.Info("服务已退出")
}

// openSessionStore 按配置选择会话存储
func openSessionStore(ctx context.Context, cfg *config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case config.StoreMemory:
		return repository.NewMemorySessionRepo(), func() {}, nil

	case config.StoreRedis:
		rdb, err := db.NewRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Redis连接成功", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		ttl := time.Duration(cfg.Session.IdleTimeoutMin) * time.Minute
		return repository.NewRedisSessionRepo(rdb, cfg.Redis.KeyPrefix, ttl), func() { rdb.Close() }, nil

	case config.StoreMySQL:
		if err := db.InitMySQLWithConfig(cfg); err != nil {
			return nil, nil, err
		}
		logger.Info("MySQL连接成功",
			"max_open_conns", cfg.DB.MaxOpenConns,
			"max_idle_conns", cfg.DB.MaxIdleConns,
			"conn_max_lifetime", cfg.DB.ConnMaxLifetime)
		return repository.NewMySQLSessionRepo(db.DB), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
