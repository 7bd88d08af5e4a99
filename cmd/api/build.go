package main

import (
	"log/slog"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	appcurrency "github.com/xiebiao/bookcatalog/internal/application/currency"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
)

// buildApp 手动组装依赖
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
func buildApp(cfg *config.Config, logger *slog.Logger) (*App, func(), error) {
	clk, err := provideClock(cfg)
	if err != nil {
		return nil, nil, err
	}

	// 基础设施层
	db, err := mysql.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	txManager := mysql.NewTxManager(db)

	redisClient, closeRedis, err := provideRedis(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	resolver, closeGeoIP, err := provideGeoIP(cfg, logger)
	if err != nil {
		closeRedis()
		return nil, nil, err
	}

	catalogRepo := provideCatalogRepository(cfg, db, txManager, redisClient, logger)
	reviewRepo := mysql.NewReviewRepository(db, txManager)

	defaults := provideCurrencyDefaults(cfg)
	rates := provideCurrencyStore(defaults)
	reloader := provideReloader(cfg, rates, defaults, logger)

	// 领域层
	catalogService := catalog.NewService(catalogRepo, clk, logger)
	reviewService := review.NewService(reviewRepo)

	// 应用层
	listBooks := appcatalog.NewListBooksUseCase(catalogService, rates)
	featuredBooks := appcatalog.NewFeaturedBooksUseCase(catalogService, rates)
	getBook := appcatalog.NewGetBookUseCase(catalogService, reviewService, rates)
	facets := appcatalog.NewFacetsUseCase(catalogService)
	listReviews := appreview.NewListReviewsUseCase(reviewService)
	metadata := appreview.NewMetadataUseCase(reviewService)
	reload := appcurrency.NewReloadUseCase(reloader)

	// 接口层
	catalogHandler := handler.NewCatalogHandler(listBooks, featuredBooks, getBook, facets)
	reviewHandler := handler.NewReviewHandler(listReviews, metadata)
	currencyHandler := handler.NewCurrencyHandler(reload)
	authMiddleware := middleware.NewAuthMiddleware(provideVerifier(cfg))
	rateLimiter := provideRateLimiter(cfg)

	engine := provideGinEngine(cfg, logger, rateLimiter, authMiddleware, resolver, catalogHandler, reviewHandler, currencyHandler)
	server := provideHTTPServer(cfg, engine)

	cleanup := func() {
		closeGeoIP()
		closeRedis()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return newApp(cfg, logger, server, reloader, rateLimiter, provideConsumerOptions(cfg)), cleanup, nil
}
