package dto

// ListBooksRequest 图书列表请求
// 未传参数时使用默认值；传入但非法的值由领域层返回参数错误，不做截断
type ListBooksRequest struct {
	Page      int    `form:"page,default=1" example:"1"`
	PageSize  int    `form:"page_size,default=15" example:"15"`                                         // 5、15、20、25
	SortBy    string `form:"sort_by" example:"default" enums:"default,popularity,price_asc,price_desc"` // 排序方式
	Category  string `form:"category" binding:"max=100" example:"Test Fiction"`                         // 分类名称
	Author    string `form:"author" binding:"max=100" example:"Alice Test"`                             // 作者名称
	MinRating *int   `form:"min_rating" example:"4"`                                                    // 最低平均分1-5
}

// Rating 未传min_rating时返回0(不过滤)
// 显式传入的值原样返回，0同样交给校验拒绝
func (r ListBooksRequest) Rating() (int, bool) {
	if r.MinRating == nil {
		return 0, false
	}
	return *r.MinRating, true
}

// FeaturedBooksRequest 精选图书请求
type FeaturedBooksRequest struct {
	SortBy string `form:"sort_by" example:"recommended" enums:"recommended,popular"`
	TopK   int    `form:"top_k,default=8" example:"8"`
}

// TopDiscountedRequest 折扣榜请求
type TopDiscountedRequest struct {
	TopK int `form:"top_k,default=5" example:"5"`
}

// BookIDPath 图书ID路径参数
type BookIDPath struct {
	ID uint `uri:"id" binding:"required,min=1" example:"1"`
}
