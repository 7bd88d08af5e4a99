package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	listReviews *appreview.ListReviewsUseCase
	metadata    *appreview.MetadataUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(listReviews *appreview.ListReviewsUseCase, metadata *appreview.MetadataUseCase) *ReviewHandler {
	return &ReviewHandler{
		listReviews: listReviews,
		metadata:    metadata,
	}
}

// ListReviews 评论列表
// @Summary      评论列表
// @Description  有评论时paging.additional_detail携带评分汇总
// @Tags         评论
// @Produce      json
// @Param        book_id        query int    true  "图书ID"
// @Param        page           query int    false "页码" default(1)
// @Param        page_size      query int    false "每页数量(5/15/20/25)" default(15)
// @Param        sort_by        query string false "排序" Enums(newest, oldest)
// @Param        filter_rating  query int    false "星级(1-5)"
// @Success      200 {object} response.Response{data=response.PageData{data=[]appreview.ReviewView}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req dto.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	result, err := h.listReviews.Execute(c.Request.Context(), appreview.ListReviewsRequest{
		BookID:       req.BookID,
		Page:         req.Page,
		PageSize:     req.PageSize,
		SortBy:       req.SortBy,
		FilterRating: req.FilterRating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Paging)
}

// Metadata 评分汇总
// @Summary      评分汇总
// @Tags         评论
// @Produce      json
// @Param        book_id  query int true "图书ID"
// @Success      200 {object} response.Response{data=map[string]int}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/reviews/metadata [get]
func (h *ReviewHandler) Metadata(c *gin.Context) {
	var req dto.ReviewMetadataRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.WrapCode(err, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error()))
		return
	}

	detail, err := h.metadata.Summary(c.Request.Context(), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Stars 星级取值范围
// @Summary      星级列表
// @Tags         筛选项
// @Produce      json
// @Success      200 {object} response.Response{data=response.RangeData{data=[]int}}
// @Router       /api/v1/reviews/range [get]
func (h *ReviewHandler) Stars(c *gin.Context) {
	stars, err := h.metadata.Stars(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithRange(c, stars, response.RangeTypeInt)
}
