package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// 列表查询的计算列
// effective_price = 最低生效折扣价，没有则为定价
// discount_amount = max(0, 定价 - effective_price)
const (
	effectivePriceExpr = "COALESCE(d.min_price, b.price)"
	discountAmountExpr = "GREATEST(b.price - COALESCE(d.min_price, b.price), 0)"
	avgRatingExpr      = "COALESCE(r.avg_rating, 0)"

	entryColumns = "b.id, b.title, b.summary, b.price, b.cover_url, b.category_id, b.author_id, " +
		"c.name AS category_name, a.name AS author_name, " +
		effectivePriceExpr + " AS effective_price, " +
		discountAmountExpr + " AS discount_amount, " +
		"COALESCE(r.review_count, 0) AS review_count, " +
		avgRatingExpr + " AS avg_rating"
)

// 排序(所有排序以b.id ASC兜底)
var (
	listOrders = map[catalog.SortOption]string{
		catalog.SortOnSale:     "discount_amount DESC, effective_price ASC, b.id ASC",
		catalog.SortPopularity: "review_count DESC, effective_price ASC, b.id ASC",
		catalog.SortPriceAsc:   "effective_price ASC, b.id ASC",
		catalog.SortPriceDesc:  "effective_price DESC, b.id ASC",
	}
	featuredOrders = map[catalog.FeaturedOption]string{
		catalog.FeaturedRecommended: "avg_rating DESC, effective_price ASC, b.id ASC",
		catalog.FeaturedPopular:     "review_count DESC, effective_price ASC, b.id ASC",
	}
	topDiscountedOrder = "discount_amount DESC, b.id ASC"
)

// entryRow 列表查询结果行
type entryRow struct {
	ID             uint            `gorm:"column:id"`
	Title          string          `gorm:"column:title"`
	Summary        string          `gorm:"column:summary"`
	Price          decimal.Decimal `gorm:"column:price"`
	CoverURL       string          `gorm:"column:cover_url"`
	CategoryID     uint            `gorm:"column:category_id"`
	AuthorID       uint            `gorm:"column:author_id"`
	CategoryName   string          `gorm:"column:category_name"`
	AuthorName     string          `gorm:"column:author_name"`
	EffectivePrice decimal.Decimal `gorm:"column:effective_price"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount"`
	ReviewCount    int64           `gorm:"column:review_count"`
	AvgRating      float64         `gorm:"column:avg_rating"`
}

// catalogRepository 目录查询仓储实现(MySQL)
// 设计说明:
// 1. 一条显式SQL完成折扣解析、价格计算、热度统计、过滤与排序
// 2. 折扣与评论都先按book_id分组再LEFT JOIN，图书行不会被放大，COUNT无需DISTINCT
// 3. 存储失败转换为数据访问错误，不返回空结果
type catalogRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewCatalogRepository 创建目录仓储
func NewCatalogRepository(db *gorm.DB, tx *TxManager) catalog.Repository {
	return &catalogRepository{db: db, tx: tx}
}

// listing 带价格与热度的图书基础查询
func (r *catalogRepository) listing(ctx context.Context, today time.Time) *gorm.DB {
	db := getDB(ctx, r.db)
	sub := db.Session(&gorm.Session{NewDB: true})
	day := sqlDate(today)

	activeDiscounts := sub.Table("discounts").
		Select("book_id, MIN(discount_price) AS min_price").
		Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", day, day).
		Group("book_id")

	ratings := sub.Table("reviews").
		Select("book_id, COUNT(*) AS review_count, AVG(rating) AS avg_rating").
		Group("book_id")

	return db.Table("books AS b").
		Select(entryColumns).
		Joins("JOIN categories c ON c.id = b.category_id").
		Joins("JOIN authors a ON a.id = b.author_id").
		Joins("LEFT JOIN (?) AS d ON d.book_id = b.id", activeDiscounts).
		Joins("LEFT JOIN (?) AS r ON r.book_id = b.id", ratings).
		Where("b.deleted_at IS NULL")
}

// filtered 在基础查询上追加过滤条件(同时生效)
func (r *catalogRepository) filtered(ctx context.Context, q catalog.ListQuery, today time.Time) *gorm.DB {
	query := r.listing(ctx, today)
	if q.Category != "" {
		query = query.Where("c.name = ?", q.Category)
	}
	if q.Author != "" {
		query = query.Where("a.name = ?", q.Author)
	}
	if q.MinRating > 0 {
		query = query.Where(avgRatingExpr+" >= ?", q.MinRating)
	}
	return query
}

// List 分页查询图书列表
// 总数与当前页在同一只读事务中读取
func (r *catalogRepository) List(ctx context.Context, q catalog.ListQuery, today time.Time) ([]catalog.Entry, int64, error) {
	order, ok := listOrders[q.SortBy]
	if !ok {
		return nil, 0, catalog.ErrInvalidSort
	}

	var (
		total int64
		rows  []entryRow
	)
	err := r.tx.ReadSnapshot(ctx, func(ctx context.Context) error {
		counted := getDB(ctx, r.db).Table("(?) AS catalog", r.filtered(ctx, q, today))
		if err := counted.Count(&total).Error; err != nil {
			return dataAccessError(err, "查询图书总数失败")
		}
		if pagination.BeyondEnd(q.Offset(), total) {
			return nil
		}

		err := r.filtered(ctx, q, today).
			Order(order).
			Limit(q.PageSize).
			Offset(q.Offset()).
			Scan(&rows).Error
		return dataAccessError(err, "查询图书列表失败")
	})
	if err != nil {
		return nil, 0, err
	}

	return toEntries(rows), total, nil
}

// Featured 精选前k本
func (r *catalogRepository) Featured(ctx context.Context, opt catalog.FeaturedOption, k int, today time.Time) ([]catalog.Entry, error) {
	order, ok := featuredOrders[opt]
	if !ok {
		return nil, catalog.ErrInvalidFeaturedSort
	}

	var rows []entryRow
	if err := r.listing(ctx, today).Order(order).Limit(k).Scan(&rows).Error; err != nil {
		return nil, dataAccessError(err, "查询精选图书失败")
	}
	return toEntries(rows), nil
}

// TopDiscounted 优惠金额最高的前k本(只包含有优惠的图书)
func (r *catalogRepository) TopDiscounted(ctx context.Context, k int, today time.Time) ([]catalog.Entry, error) {
	var rows []entryRow
	err := r.listing(ctx, today).
		Where(discountAmountExpr + " > 0").
		Order(topDiscountedOrder).
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, dataAccessError(err, "查询折扣榜失败")
	}
	return toEntries(rows), nil
}

// FindByID 查询单本图书
func (r *catalogRepository) FindByID(ctx context.Context, id uint, today time.Time) (*catalog.Entry, error) {
	var rows []entryRow
	if err := r.listing(ctx, today).Where("b.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, dataAccessError(err, "查询图书失败")
	}
	if len(rows) == 0 {
		return nil, catalog.ErrBookNotFound
	}

	entry := toEntry(&rows[0])
	return &entry, nil
}

// CategoryNames 分类名称(去重、升序)
func (r *catalogRepository) CategoryNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := getDB(ctx, r.db).Model(&CategoryModel{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, dataAccessError(err, "查询分类失败")
	}
	return names, nil
}

// AuthorNames 作者名称(去重、升序)
func (r *catalogRepository) AuthorNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := getDB(ctx, r.db).Model(&AuthorModel{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, dataAccessError(err, "查询作者失败")
	}
	return names, nil
}

// =========================================
// 辅助函数:行 → 领域条目
// =========================================

func toEntries(rows []entryRow) []catalog.Entry {
	entries := make([]catalog.Entry, len(rows))
	for i := range rows {
		entries[i] = toEntry(&rows[i])
	}
	return entries
}

func toEntry(row *entryRow) catalog.Entry {
	return catalog.Entry{
		Book: catalog.Book{
			ID:         row.ID,
			Title:      row.Title,
			Summary:    row.Summary,
			Price:      row.Price,
			CoverURL:   row.CoverURL,
			CategoryID: row.CategoryID,
			AuthorID:   row.AuthorID,
		},
		CategoryName: row.CategoryName,
		AuthorName:   row.AuthorName,
		PriceAnnotation: catalog.PriceAnnotation{
			EffectivePrice: row.EffectivePrice,
			DiscountAmount: row.DiscountAmount,
		},
		Popularity: catalog.Popularity{
			ReviewCount:   row.ReviewCount,
			AverageRating: row.AvgRating,
		},
	}
}
