package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	infracurrency "github.com/xiebiao/bookcatalog/internal/infrastructure/currency"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/geoip"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// ========================================
// Providers
// ========================================
// main.go手动调用这些函数组装依赖，wire.go使用同一组Provider生成代码

// provideClock 按配置时区计算"今天"
func provideClock(cfg *config.Config) (clock.Clock, error) {
	loc, err := cfg.Server.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewRealClock(loc), nil
}

// provideRedis 缓存未启用时返回nil
func provideRedis(cfg *config.Config, logger *slog.Logger) (*goredis.Client, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideCatalogRepository MySQL仓储，启用缓存时外包一层Redis装饰器
func provideCatalogRepository(cfg *config.Config, db *gorm.DB, tx *mysql.TxManager, client *goredis.Client, logger *slog.Logger) catalog.Repository {
	repo := mysql.NewCatalogRepository(db, tx)
	if client == nil {
		return repo
	}
	return redis.NewCachedCatalogRepository(repo, client, cfg.Cache.TTL, cfg.Cache.KeyPrefix, logger)
}

func provideCurrencyDefaults(cfg *config.Config) currency.Defaults {
	return currency.Defaults{
		Country: currency.NormalizeCode(cfg.Currency.DefaultCountry),
		Symbol:  cfg.Currency.DefaultSymbol,
	}
}

// provideCurrencyStore 初始为空表，启动时由Reloader加载CSV
func provideCurrencyStore(defaults currency.Defaults) *currency.Store {
	return currency.NewStore(nil, defaults)
}

func provideReloader(cfg *config.Config, store *currency.Store, defaults currency.Defaults, logger *slog.Logger) *infracurrency.Reloader {
	return infracurrency.NewReloader(store, cfg.Currency.CSVPath, defaults, logger)
}

// provideGeoIP 未配置mmdb时只使用默认国家
func provideGeoIP(cfg *config.Config, logger *slog.Logger) (*geoip.Resolver, func(), error) {
	if cfg.GeoIP.DatabasePath == "" {
		return geoip.NewResolver(nil, cfg.Currency.DefaultCountry), func() {}, nil
	}
	reader, err := geoip.Open(cfg.GeoIP.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("GeoIP库已加载", "path", cfg.GeoIP.DatabasePath)
	return geoip.NewResolver(reader, cfg.Currency.DefaultCountry), func() { _ = reader.Close() }, nil
}

func provideVerifier(cfg *config.Config) *jwt.Verifier {
	return jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
}

func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// provideConsumerOptions 汇率快照消息的队列配置
func provideConsumerOptions(cfg *config.Config) mq.Options {
	return mq.Options{
		URL:         cfg.MQ.URL,
		Exchange:    cfg.MQ.Exchange,
		Queue:       cfg.MQ.Queue,
		RoutingKeys: strings.Split(cfg.MQ.RoutingKey, ","),
	}
}

// provideGinEngine 注册路由
func provideGinEngine(
	cfg *config.Config,
	logger *slog.Logger,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	resolver *geoip.Resolver,
	catalogHandler *handler.CatalogHandler,
	reviewHandler *handler.ReviewHandler,
	currencyHandler *handler.CurrencyHandler,
) *gin.Engine {
	return router.New(router.Options{
		Mode:        cfg.Server.Mode,
		Swagger:     cfg.Server.Mode != gin.ReleaseMode,
		Logger:      logger,
		RateLimiter: rateLimiter,
		Auth:        authMiddleware,
		Country:     resolver,
		Catalog:     catalogHandler,
		Reviews:     reviewHandler,
		Currency:    currencyHandler,
	})
}

func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
