package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

var reviewOrders = map[review.SortOption]string{
	review.SortNewest: "review_date DESC, id DESC",
	review.SortOldest: "review_date ASC, id ASC",
}

// reviewRepository 评论只读仓储(MySQL)
type reviewRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB, tx *TxManager) review.Repository {
	return &reviewRepository{db: db, tx: tx}
}

// List 分页查询评论，总数、当前页与星级分布在同一只读事务内读取
func (r *reviewRepository) List(ctx context.Context, q review.Query) (*review.Page, error) {
	order, ok := reviewOrders[q.SortBy]
	if !ok {
		return nil, review.ErrInvalidSort
	}

	var (
		page   review.Page
		models []ReviewModel
	)
	err := r.tx.ReadSnapshot(ctx, func(ctx context.Context) error {
		if err := r.filtered(ctx, q).Count(&page.Total).Error; err != nil {
			return dataAccessError(err, "查询评论总数失败")
		}
		if page.Total == 0 {
			return nil
		}

		counts, err := r.StarCounts(ctx, q.BookID)
		if err != nil {
			return err
		}
		page.StarCounts = counts

		if pagination.BeyondEnd(q.Offset(), page.Total) {
			return nil
		}
		err = r.filtered(ctx, q).
			Order(order).
			Limit(q.PageSize).
			Offset(q.Offset()).
			Find(&models).Error
		return dataAccessError(err, "查询评论列表失败")
	})
	if err != nil {
		return nil, err
	}

	page.Items = toReviews(models)
	return &page, nil
}

func (r *reviewRepository) filtered(ctx context.Context, q review.Query) *gorm.DB {
	query := getDB(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", q.BookID)
	if q.FilterRating != 0 {
		query = query.Where("rating = ?", q.FilterRating)
	}
	return query
}

// ListByBook 某本书的全部评论(最新优先)
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order(reviewOrders[review.SortNewest]).
		Find(&models).Error
	if err != nil {
		return nil, dataAccessError(err, "查询图书评论失败")
	}
	return toReviews(models), nil
}

type starCountRow struct {
	Rating int   `gorm:"column:rating"`
	Total  int64 `gorm:"column:total"`
}

// StarCounts 各星级评论数
func (r *reviewRepository) StarCounts(ctx context.Context, bookID uint) (map[int]int64, error) {
	var rows []starCountRow
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("rating, COUNT(*) AS total").
		Where("book_id = ?", bookID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, dataAccessError(err, "统计评分失败")
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Total
	}
	return counts, nil
}

// DistinctStars 出现过的星级(升序)
func (r *reviewRepository) DistinctStars(ctx context.Context) ([]int, error) {
	stars := []int{}
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Distinct("rating").
		Order("rating ASC").
		Pluck("rating", &stars).Error
	if err != nil {
		return nil, dataAccessError(err, "查询评分范围失败")
	}
	return stars, nil
}

func toReviews(models []ReviewModel) []review.Review {
	reviews := make([]review.Review, len(models))
	for i, m := range models {
		reviews[i] = review.Review{
			ID:         m.ID,
			BookID:     m.BookID,
			Title:      m.Title,
			Details:    m.Details,
			Rating:     m.Rating,
			ReviewDate: m.ReviewDate,
		}
	}
	return reviews
}
