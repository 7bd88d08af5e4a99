package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	infracurrency "github.com/xiebiao/bookcatalog/internal/infrastructure/currency"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// App 进程内所有长期运行的组件
type App struct {
	cfg          *config.Config
	logger       *slog.Logger
	server       *http.Server
	reloader     *infracurrency.Reloader
	rateLimiter  *middleware.RateLimiter
	consumerOpts mq.Options
}

func newApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	reloader *infracurrency.Reloader,
	rateLimiter *middleware.RateLimiter,
	consumerOpts mq.Options,
) *App {
	return &App{
		cfg:          cfg,
		logger:       logger,
		server:       server,
		reloader:     reloader,
		rateLimiter:  rateLimiter,
		consumerOpts: consumerOpts,
	}
}

// Run 加载汇率表后启动HTTP服务，ctx取消时优雅退出
// 启动时汇率文件无法加载直接返回错误
func (a *App) Run(ctx context.Context) error {
	table, err := a.reloader.ReloadFile(ctx, infracurrency.SourceStartup)
	if err != nil {
		return fmt.Errorf("加载汇率文件失败: %w", err)
	}
	a.logger.Info("汇率表已加载", "rates", table.Len(), "path", a.cfg.Currency.CSVPath)

	var consumer *mq.Consumer
	if a.cfg.MQ.Enabled {
		consumer, err = mq.NewConsumer(a.consumerOpts, a.logger)
		if err != nil {
			return fmt.Errorf("连接消息队列失败: %w", err)
		}
		defer func() { _ = consumer.Close() }()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.rateLimiter.Run(ctx)
		return nil
	})

	if a.cfg.Currency.Watch {
		watcher := infracurrency.NewWatcher(a.reloader, infracurrency.DefaultDebounce)
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if consumer != nil {
		g.Go(func() error {
			return consumer.Consume(ctx, infracurrency.SnapshotHandler(a.reloader))
		})
	}

	g.Go(func() error {
		a.logger.Info("HTTP服务启动", "addr", a.server.Addr, "mode", a.cfg.Server.Mode)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.logger.Info("正在关闭HTTP服务")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
