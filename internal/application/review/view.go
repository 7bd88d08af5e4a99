// Package review 评论查询用例
package review

import (
	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

// ReviewView 评论响应DTO
type ReviewView struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	Details    string `json:"details"`
	Rating     int    `json:"rating"`
	ReviewDate string `json:"review_date"`
}

const dateTimeLayout = "2006-01-02 15:04:05"

// ToViews 转换为响应DTO，空输入返回空切片(序列化为[])
func ToViews(reviews []review.Review) []ReviewView {
	views := make([]ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = ReviewView{
			ID:         r.ID,
			BookID:     r.BookID,
			Title:      r.Title,
			Details:    r.Details,
			Rating:     r.Rating,
			ReviewDate: r.ReviewDate.Format(dateTimeLayout),
		}
	}
	return views
}
