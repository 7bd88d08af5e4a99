package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CatalogHandler 图书目录HTTP处理器
type CatalogHandler struct {
	listBooks     *appcatalog.ListBooksUseCase
	featuredBooks *appcatalog.FeaturedBooksUseCase
	getBook       *appcatalog.GetBookUseCase
	facets        *appcatalog.FacetsUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(
	listBooks *appcatalog.ListBooksUseCase,
	featuredBooks *appcatalog.FeaturedBooksUseCase,
	getBook *appcatalog.GetBookUseCase,
	facets *appcatalog.FacetsUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		listBooks:     listBooks,
		featuredBooks: featuredBooks,
		getBook:       getBook,
		facets:        facets,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询图书，支持按分类、作者、最低评分过滤；价格按国家换算
// @Tags         图书
// @Produce      json
// @Param        page        query int    false "页码" default(1)
// @Param        page_size   query int    false "每页数量(5/15/20/25)" default(15)
// @Param        sort_by     query string false "排序方式" Enums(default, popularity, price_asc, price_desc)
// @Param        category    query string false "分类名称"
// @Param        author      query string false "作者名称"
// @Param        min_rating  query int    false "最低平均分(1-5)"
// @Param        country     query string false "国家代码(两位字母)"
// @Success      200 {object} response.Response{data=response.PageData{data=[]appcatalog.BookView}}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      503 {object} response.Response "数据服务不可用"
// @Router       /api/v1/books [get]
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}
	// 0在查询条件中表示不过滤，显式传入时不能当作未传
	minRating, set := req.Rating()
	if set && minRating == 0 {
		response.Error(c, catalog.ErrInvalidRating)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appcatalog.ListBooksRequest{
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		Category:  req.Category,
		Author:    req.Author,
		MinRating: minRating,
		Country:   middleware.GetCountry(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Paging)
}

// FeaturedBooks 精选图书
// @Summary      精选图书
// @Description  recommended按平均分降序，popular按评论数降序，均以实际售价升序打破平局
// @Tags         图书
// @Produce      json
// @Param        sort_by  query string false "精选方式" Enums(recommended, popular)
// @Param        top_k    query int    false "数量(1-50)" default(8)
// @Param        country  query string false "国家代码(两位字母)"
// @Success      200 {object} response.Response{data=[]appcatalog.BookView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/featured [get]
func (h *CatalogHandler) FeaturedBooks(c *gin.Context) {
	var req dto.FeaturedBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	views, err := h.featuredBooks.Featured(c.Request.Context(), appcatalog.FeaturedRequest{
		SortBy:  req.SortBy,
		TopK:    req.TopK,
		Country: middleware.GetCountry(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, views)
}

// TopDiscounted 折扣榜
// @Summary      折扣榜
// @Description  当前优惠金额最大的前k本书
// @Tags         图书
// @Produce      json
// @Param        top_k    query int    false "数量(1-50)" default(5)
// @Param        country  query string false "国家代码(两位字母)"
// @Success      200 {object} response.Response{data=[]appcatalog.BookView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/top-discounted [get]
func (h *CatalogHandler) TopDiscounted(c *gin.Context) {
	var req dto.TopDiscountedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	views, err := h.featuredBooks.TopDiscounted(c.Request.Context(), appcatalog.FeaturedRequest{
		TopK:    req.TopK,
		Country: middleware.GetCountry(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, views)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id       path  int    true  "图书ID"
// @Param        country  query string false "国家代码(两位字母)"
// @Success      200 {object} response.Response{data=appcatalog.BookDetail}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *CatalogHandler) GetBook(c *gin.Context) {
	var path dto.BookIDPath
	if err := c.ShouldBindUri(&path); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeInvalidParams, "图书ID必须是正整数"))
		return
	}

	detail, err := h.getBook.Execute(c.Request.Context(), path.ID, middleware.GetCountry(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Categories 分类取值范围
// @Summary      分类列表
// @Tags         筛选项
// @Produce      json
// @Success      200 {object} response.Response{data=response.RangeData{data=[]string}}
// @Router       /api/v1/categories/range [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	names, err := h.facets.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithRange(c, names, response.RangeTypeString)
}

// Authors 作者取值范围
// @Summary      作者列表
// @Tags         筛选项
// @Produce      json
// @Success      200 {object} response.Response{data=response.RangeData{data=[]string}}
// @Router       /api/v1/authors/range [get]
func (h *CatalogHandler) Authors(c *gin.Context) {
	names, err := h.facets.Authors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithRange(c, names, response.RangeTypeString)
}
