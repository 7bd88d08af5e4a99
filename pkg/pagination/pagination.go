package pagination

import "math"

// AllowedPageSizes 允许的每页数量
// 不在列表内的值视为参数错误（不做静默截断）
var AllowedPageSizes = []int{5, 15, 20, 25}

// DefaultPageSize 默认每页数量
const DefaultPageSize = 15

// IsAllowedPageSize 判断每页数量是否在允许列表内
func IsAllowedPageSize(size int) bool {
	for _, s := range AllowedPageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Offset 计算偏移量，page从1开始
// 溢出时返回math.MaxInt，调用方按超出最后一页处理
func Offset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// BeyondEnd 偏移量是否不在[0,total)内
func BeyondEnd(offset int, total int64) bool {
	return offset < 0 || int64(offset) >= total
}

// Paging 分页信息
type Paging struct {
	Page             int            `json:"page"`
	PageSize         int            `json:"page_size"`
	TotalItems       int64          `json:"total_items"`
	TotalPages       int            `json:"total_pages"`
	HasNext          bool           `json:"has_next"`
	HasPrev          bool           `json:"has_prev"`
	AdditionalDetail map[string]int `json:"additional_detail,omitempty"`
}

// New 创建分页信息
// totalPages = ceil(total/pageSize)，pageSize<=0时为0
func New(page, pageSize int, total int64) Paging {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return Paging{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
