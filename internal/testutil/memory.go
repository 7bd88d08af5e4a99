package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// CatalogRepository 基于Dataset的内存目录仓储
// Err非nil时所有方法返回该错误，用于模拟数据访问失败
type CatalogRepository struct {
	Data *catalog.Dataset
	Err  error
}

// NewCatalogRepository 使用种子数据创建内存仓储
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{Data: Dataset()}
}

var _ catalog.Repository = (*CatalogRepository)(nil)

func (r *CatalogRepository) List(_ context.Context, q catalog.ListQuery, today time.Time) ([]catalog.Entry, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	items, total := r.Data.List(q, today)
	return items, total, nil
}

func (r *CatalogRepository) Featured(_ context.Context, opt catalog.FeaturedOption, k int, today time.Time) ([]catalog.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Data.Featured(opt, k, today), nil
}

func (r *CatalogRepository) TopDiscounted(_ context.Context, k int, today time.Time) ([]catalog.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Data.TopDiscounted(k, today), nil
}

func (r *CatalogRepository) FindByID(_ context.Context, id uint, today time.Time) (*catalog.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.Data.Find(id, today)
	if !ok {
		return nil, catalog.ErrBookNotFound
	}
	return e, nil
}

func (r *CatalogRepository) CategoryNames(context.Context) ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	names := make([]string, 0, len(r.Data.Categories))
	for _, c := range r.Data.Categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *CatalogRepository) AuthorNames(context.Context) ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	names := make([]string, 0, len(r.Data.Authors))
	for _, a := range r.Data.Authors {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ReviewRepository 内存评论仓储
type ReviewRepository struct {
	Reviews []review.Review
	Err     error
}

// NewReviewRepository 使用种子评论创建内存仓储
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{Reviews: Reviews()}
}

var _ review.Repository = (*ReviewRepository)(nil)

func (r *ReviewRepository) List(ctx context.Context, q review.Query) (*review.Page, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	var matched []review.Review
	for _, rv := range r.Reviews {
		if rv.BookID != q.BookID {
			continue
		}
		if q.FilterRating != 0 && rv.Rating != q.FilterRating {
			continue
		}
		matched = append(matched, rv)
	}
	sortReviews(matched, q.SortBy)

	page := &review.Page{Items: []review.Review{}, Total: int64(len(matched))}
	if page.Total == 0 {
		return page, nil
	}
	counts, err := r.StarCounts(ctx, q.BookID)
	if err != nil {
		return nil, err
	}
	page.StarCounts = counts

	offset := q.Offset()
	if pagination.BeyondEnd(offset, page.Total) {
		return page, nil
	}
	end := offset + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	page.Items = matched[offset:end]
	return page, nil
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID uint) ([]review.Review, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	var out []review.Review
	for _, rv := range r.Reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	sortReviews(out, review.SortNewest)
	return out, nil
}

func (r *ReviewRepository) StarCounts(_ context.Context, bookID uint) (map[int]int64, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	counts := make(map[int]int64)
	for _, rv := range r.Reviews {
		if rv.BookID == bookID {
			counts[rv.Rating]++
		}
	}
	return counts, nil
}

func (r *ReviewRepository) DistinctStars(context.Context) ([]int, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	seen := make(map[int]bool)
	var stars []int
	for _, rv := range r.Reviews {
		if !seen[rv.Rating] {
			seen[rv.Rating] = true
			stars = append(stars, rv.Rating)
		}
	}
	sort.Ints(stars)
	return stars, nil
}

func sortReviews(reviews []review.Review, by review.SortOption) {
	sort.SliceStable(reviews, func(i, j int) bool {
		a, b := reviews[i], reviews[j]
		if !a.ReviewDate.Equal(b.ReviewDate) {
			if by == review.SortOldest {
				return a.ReviewDate.Before(b.ReviewDate)
			}
			return a.ReviewDate.After(b.ReviewDate)
		}
		if by == review.SortOldest {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}
