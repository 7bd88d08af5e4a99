//go:build wireinject
// +build wireinject

package main

import (
	"log/slog"

	"github.com/google/wire"

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

// wire gen ./cmd/api 生成wire_gen.go，结果与buildApp手工组装的一致

var infrastructureSet = wire.NewSet(
	provideClock,
	mysql.NewDB,
	provideRedis,
	provideGeoIP,
	provideConsumerOptions,
)

var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	provideCatalogRepository,
	mysql.NewReviewRepository,
)

var currencySet = wire.NewSet(
	provideCurrencyDefaults,
	provideCurrencyStore,
	provideReloader,
)

var domainSet = wire.NewSet(
	catalog.NewService,
	review.NewService,
)

var applicationSet = wire.NewSet(
	appcatalog.NewListBooksUseCase,
	appcatalog.NewFeaturedBooksUseCase,
	appcatalog.NewGetBookUseCase,
	appcatalog.NewFacetsUseCase,
	appreview.NewListReviewsUseCase,
	appreview.NewMetadataUseCase,
	appcurrency.NewReloadUseCase,
)

var middlewareSet = wire.NewSet(
	provideVerifier,
	middleware.NewAuthMiddleware,
	provideRateLimiter,
)

var handlerSet = wire.NewSet(
	handler.NewCatalogHandler,
	handler.NewReviewHandler,
	handler.NewCurrencyHandler,
)

// InitializeApp Wire注入器
func InitializeApp(cfg *config.Config, logger *slog.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		currencySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
		provideHTTPServer,
		newApp,
	)
	return nil, nil, nil
}
