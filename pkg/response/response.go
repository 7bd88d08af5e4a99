package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/pagination"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，0表示成功
// 2. HTTP状态码由错误码区段推导(参数错误400、不存在404、数据服务不可用503)
// 3. Data是业务数据，失败时省略
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 内部错误只写日志，不返回给客户端
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "请求失败",
			"code", appErr.Code,
			"path", c.FullPath(),
			"error", err,
		)
	}

	c.JSON(status, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	appErr := apperrors.New(code, message)
	c.JSON(appErr.HTTPStatus(), Response{
		Code:    code,
		Message: message,
	})
}

// Abort 错误响应并终止后续Handler(中间件使用)
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// =========================================
// 列表响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	Data   interface{}       `json:"data"`
	Paging pagination.Paging `json:"paging"`
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, paging pagination.Paging) {
	Success(c, PageData{Data: list, Paging: paging})
}

// 取值范围类型
const (
	RangeTypeString = "str"
	RangeTypeInt    = "int"
)

// RangeData 筛选项取值范围(分类、作者、星级)
type RangeData struct {
	Data interface{} `json:"data"`
	Type string      `json:"type"`
}

// SuccessWithRange 取值范围响应
func SuccessWithRange(c *gin.Context, values interface{}, typ string) {
	Success(c, RangeData{Data: values, Type: typ})
}
