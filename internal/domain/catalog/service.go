package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// PageResult 分页结果
type PageResult struct {
	Items  []Entry
	Paging pagination.Paging
}

// Service 目录查询领域服务
// 业务规则:
// - 参数在查询前校验，非法参数返回参数错误，不做静默修正
// - "今天"来自注入的时钟，折扣按天生效
// - 数据访问失败记录日志后向上返回，不降级为空结果
type Service interface {
	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, q ListQuery) (*PageResult, error)

	// FeaturedBooks 精选图书(前k本，不分页)
	FeaturedBooks(ctx context.Context, opt FeaturedOption, k int) ([]Entry, error)

	// TopDiscounted 折扣榜(前k本)
	TopDiscounted(ctx context.Context, k int) ([]Entry, error)

	// GetBook 图书详情
	GetBook(ctx context.Context, id uint) (*Entry, error)

	// Categories 分类名称列表
	Categories(ctx context.Context) ([]string, error)

	// Authors 作者名称列表
	Authors(ctx context.Context) ([]string, error)
}

// service 领域服务实现
type service struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

// NewService 创建目录领域服务
func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, clock: clk, logger: logger}
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, q ListQuery) (result *PageResult, err error) {
	defer s.observe(ctx, "list_books", time.Now(), &err)

	if err := q.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, q, clock.Today(s.clock))
	if err != nil {
		return nil, err
	}

	return &PageResult{
		Items:  items,
		Paging: pagination.New(q.Page, q.PageSize, total),
	}, nil
}

// FeaturedBooks 精选图书
func (s *service) FeaturedBooks(ctx context.Context, opt FeaturedOption, k int) (entries []Entry, err error) {
	defer s.observe(ctx, "featured_books", time.Now(), &err)

	if !opt.Valid() {
		return nil, ErrInvalidFeaturedSort
	}
	if err := ValidateTopK(k); err != nil {
		return nil, err
	}

	return s.repo.Featured(ctx, opt, k, clock.Today(s.clock))
}

// TopDiscounted 折扣榜
func (s *service) TopDiscounted(ctx context.Context, k int) (entries []Entry, err error) {
	defer s.observe(ctx, "top_discounted", time.Now(), &err)

	if err := ValidateTopK(k); err != nil {
		return nil, err
	}

	return s.repo.TopDiscounted(ctx, k, clock.Today(s.clock))
}

// GetBook 图书详情
func (s *service) GetBook(ctx context.Context, id uint) (entry *Entry, err error) {
	defer s.observe(ctx, "get_book", time.Now(), &err)

	if id == 0 {
		return nil, ErrInvalidBookID
	}

	return s.repo.FindByID(ctx, id, clock.Today(s.clock))
}

// Categories 分类名称列表
func (s *service) Categories(ctx context.Context) (names []string, err error) {
	defer s.observe(ctx, "categories", time.Now(), &err)
	return s.repo.CategoryNames(ctx)
}

// Authors 作者名称列表
func (s *service) Authors(ctx context.Context) (names []string, err error) {
	defer s.observe(ctx, "authors", time.Now(), &err)
	return s.repo.AuthorNames(ctx)
}

// observe 记录查询指标；数据访问失败额外输出错误日志
func (s *service) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	err := *errp
	result := classify(err)
	metrics.ObserveCatalogQuery(operation, result, start)

	if result == metrics.ResultError {
		s.logger.ErrorContext(ctx, "目录查询失败",
			"operation", operation,
			"error", err,
			"elapsed", time.Since(start),
		)
	}
}

func classify(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	if errors.Is(err, ErrBookNotFound) {
		return metrics.ResultNotFound
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus() < 500 {
		return metrics.ResultInvalid
	}
	return metrics.ResultError
}
