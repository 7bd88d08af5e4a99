package review

import (
	"fmt"
	"math"
	"time"
)

// Review 图书评论
type Review struct {
	ID         uint
	BookID     uint
	Title      string
	Details    string
	Rating     int // 1-5星
	ReviewDate time.Time
}

// Summary 单本图书的评分汇总
// AverageRating为平均分*100后取整(4.5分 → 450)，无评论时为0
type Summary struct {
	BookID        uint
	StarCounts    [5]int64 // 下标0对应1星
	TotalReviews  int64
	AverageRating int
}

// Summarize 根据各星级数量计算汇总
// 超出1-5范围的星级忽略
func Summarize(bookID uint, counts map[int]int64) Summary {
	s := Summary{BookID: bookID}
	var weighted int64
	for star := 1; star <= 5; star++ {
		n := counts[star]
		s.StarCounts[star-1] = n
		s.TotalReviews += n
		weighted += int64(star) * n
	}

	if s.TotalReviews > 0 {
		avg := float64(weighted) / float64(s.TotalReviews)
		s.AverageRating = int(math.Round(avg * 100))
	}
	return s
}

// Detail 转换为star_1_count...star_5_count/total_reviews/average_rating键值
func (s Summary) Detail() map[string]int {
	detail := make(map[string]int, 7)
	for i, n := range s.StarCounts {
		detail[fmt.Sprintf("star_%d_count", i+1)] = int(n)
	}
	detail["total_reviews"] = int(s.TotalReviews)
	detail["average_rating"] = s.AverageRating
	return detail
}
