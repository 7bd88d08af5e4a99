// Package testutil 测试夹具：固定日期下的目录种子数据与内存仓储
//
// 种子数据(相对Today)：
//   - 12本书，3个分类，3位作者
//   - 生效折扣：1、3、5、7、10；未来折扣：2；过期折扣：8
//   - 11条评论，覆盖1、2、3、5、6、7、11、12号书
package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

// Today 夹具使用的固定日期
var Today = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

// Now 夹具使用的固定时间(Today中午)
var Now = Today.Add(12 * time.Hour)

// 分类与作者名称
const (
	CategoryFiction    = "Test Fiction"
	CategoryNonFiction = "Test Non-Fiction"
	CategorySciFi      = "Test Sci-Fi"

	AuthorAlice   = "Alice Test"
	AuthorBob     = "Bob Test"
	AuthorCharlie = "Charlie Test"
)

// Price 解析价格字面量
func Price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(offset int) time.Time {
	return Today.AddDate(0, 0, offset)
}

func dayPtr(offset int) *time.Time {
	t := day(offset)
	return &t
}

// Dataset 返回种子数据(每次返回新副本)
func Dataset() *catalog.Dataset {
	book := func(id uint, price string, categoryID, authorID uint) catalog.Book {
		return catalog.Book{
			ID:         id,
			Title:      "Test Book " + decimal.NewFromInt(int64(id)).String(),
			Price:      Price(price),
			CategoryID: categoryID,
			AuthorID:   authorID,
		}
	}

	return &catalog.Dataset{
		Books: []catalog.Book{
			book(1, "20.00", 1, 1),
			book(2, "50.00", 1, 1),
			book(3, "30.00", 2, 2),
			book(4, "40.00", 2, 2),
			book(5, "60.00", 1, 1),
			book(6, "25.00", 2, 2),
			book(7, "45.00", 1, 3),
			book(8, "50.00", 3, 3),
			book(9, "15.00", 1, 1),
			book(10, "70.00", 3, 3),
			book(11, "35.00", 1, 1),
			book(12, "35.00", 2, 2),
		},
		Categories: []catalog.Category{
			{ID: 1, Name: CategoryFiction},
			{ID: 2, Name: CategoryNonFiction},
			{ID: 3, Name: CategorySciFi},
		},
		Authors: []catalog.Author{
			{ID: 1, Name: AuthorAlice},
			{ID: 2, Name: AuthorBob},
			{ID: 3, Name: AuthorCharlie},
		},
		Discounts: []catalog.Discount{
			{ID: 1, BookID: 1, Price: Price("10.00"), StartDate: day(-1), EndDate: dayPtr(1)},
			{ID: 2, BookID: 3, Price: Price("25.00"), StartDate: day(0), EndDate: dayPtr(90)},
			{ID: 3, BookID: 5, Price: Price("30.00"), StartDate: day(-1), EndDate: dayPtr(1)},
			{ID: 4, BookID: 7, Price: Price("35.00"), StartDate: day(-1), EndDate: dayPtr(90)},
			{ID: 5, BookID: 10, Price: Price("65.00"), StartDate: day(0), EndDate: dayPtr(1)},
			{ID: 6, BookID: 2, Price: Price("40.00"), StartDate: day(1), EndDate: dayPtr(90)},
			{ID: 7, BookID: 8, Price: Price("40.00"), StartDate: day(-90), EndDate: dayPtr(-1)},
		},
		Ratings: ratings(Reviews()),
	}
}

// Reviews 种子评论
func Reviews() []review.Review {
	ago := func(days int) time.Time { return Now.AddDate(0, 0, -days) }
	return []review.Review{
		{ID: 1, BookID: 1, Rating: 5, Title: "Excellent", ReviewDate: ago(10)},
		{ID: 2, BookID: 1, Rating: 4, Title: "Very Good", ReviewDate: ago(5)},
		{ID: 3, BookID: 2, Rating: 3, Title: "Okay", ReviewDate: ago(20)},
		{ID: 4, BookID: 3, Rating: 5, Title: "Perfect!", ReviewDate: ago(15)},
		{ID: 5, BookID: 3, Rating: 5, Title: "Still perfect", ReviewDate: ago(1)},
		{ID: 6, BookID: 5, Rating: 5, Title: "Amazing B5", ReviewDate: ago(2)},
		{ID: 7, BookID: 6, Rating: 4, Title: "Good B6", ReviewDate: ago(3)},
		{ID: 8, BookID: 7, Rating: 4, Title: "Solid B7", ReviewDate: ago(4)},
		{ID: 9, BookID: 7, Rating: 4, Title: "Consistent B7", ReviewDate: ago(1)},
		{ID: 10, BookID: 11, Rating: 3, Title: "Meh B11", ReviewDate: ago(6)},
		{ID: 11, BookID: 12, Rating: 1, Title: "Poor B12", ReviewDate: ago(7)},
	}
}

func ratings(reviews []review.Review) []catalog.Rating {
	out := make([]catalog.Rating, len(reviews))
	for i, r := range reviews {
		out[i] = catalog.Rating{BookID: r.BookID, Stars: r.Rating}
	}
	return out
}

// IDs 提取条目ID序列
func IDs(entries []catalog.Entry) []uint {
	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
