package mysql

import (
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// dateLayout 日期参数格式
// 以字符串传给驱动，避免DSN中的loc把UTC零点换算成前一天
const dateLayout = "2006-01-02"

func sqlDate(t time.Time) string {
	return t.Format(dateLayout)
}

// dataAccessError 存储层失败统一转换为数据访问错误(HTTP 503)
func dataAccessError(err error, message string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.WrapCode(err, apperrors.ErrCodeDataAccess, message)
}
