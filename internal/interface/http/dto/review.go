package dto

// ListReviewsRequest 评论列表请求
type ListReviewsRequest struct {
	BookID       uint   `form:"book_id" binding:"required,min=1" example:"1"`
	Page         int    `form:"page,default=1" example:"1"`
	PageSize     int    `form:"page_size,default=15" example:"15"`
	SortBy       string `form:"sort_by" example:"newest" enums:"newest,oldest"`
	FilterRating int    `form:"filter_rating" example:"5"` // 只看该星级，0表示全部
}

// ReviewMetadataRequest 评分汇总请求
type ReviewMetadataRequest struct {
	BookID uint `form:"book_id" binding:"required,min=1" example:"1"`
}
