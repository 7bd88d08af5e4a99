// Package router 注册HTTP路由与全局中间件
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/geoip"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由依赖
type Options struct {
	Mode    string // debug | release | test
	Swagger bool

	Logger      *slog.Logger
	RateLimiter *middleware.RateLimiter
	Auth        *middleware.AuthMiddleware
	Country     *geoip.Resolver

	Catalog  *handler.CatalogHandler
	Reviews  *handler.ReviewHandler
	Currency *handler.CurrencyHandler
}

// New 创建并配置Gin引擎
// 中间件顺序：Recovery → Tracing → Logger → Metrics → 限流(仅API)
func New(opts Options) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.Logger(opts.Logger),
		middleware.Metrics(),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	if opts.RateLimiter != nil {
		v1.Use(opts.RateLimiter.Middleware())
	}
	v1.Use(middleware.Country(opts.Country))
	{
		books := v1.Group("/books")
		{
			books.GET("", opts.Catalog.ListBooks)
			books.GET("/featured", opts.Catalog.FeaturedBooks)
			books.GET("/top-discounted", opts.Catalog.TopDiscounted)
			books.GET("/:id", opts.Catalog.GetBook)
		}

		v1.GET("/categories/range", opts.Catalog.Categories)
		v1.GET("/authors/range", opts.Catalog.Authors)

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", opts.Reviews.ListReviews)
			reviews.GET("/metadata", opts.Reviews.Metadata)
			reviews.GET("/range", opts.Reviews.Stars)
		}

		// 管理接口(需要Bearer Token)
		admin := v1.Group("/admin")
		admin.Use(opts.Auth.RequireAuth())
		{
			admin.POST("/currencies/reload", opts.Currency.Reload)
		}
	}

	return r
}
