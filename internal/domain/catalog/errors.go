package catalog

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 目录领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidBookID 图书ID非法
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID必须大于0")

	// ErrInvalidPage 页码非法
	ErrInvalidPage = apperrors.New(apperrors.ErrCodeInvalidPage, "页码必须大于等于1")

	// ErrInvalidPageSize 每页数量不在允许列表内
	ErrInvalidPageSize = apperrors.New(apperrors.ErrCodeInvalidPageSize, "每页数量只能是5、15、20、25")

	// ErrInvalidSort 排序方式非法
	ErrInvalidSort = apperrors.New(apperrors.ErrCodeInvalidSort, "排序方式只能是default、popularity、price_asc、price_desc")

	// ErrInvalidFeaturedSort 精选排序非法
	ErrInvalidFeaturedSort = apperrors.New(apperrors.ErrCodeInvalidSort, "精选排序只能是recommended或popular")

	// ErrInvalidRating 最低评分非法
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidRating, "最低评分必须在1-5之间")

	// ErrInvalidTopK top_k非法
	ErrInvalidTopK = apperrors.New(apperrors.ErrCodeInvalidTopK, "top_k必须在1-50之间")
)
