package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/geoip"
)

const contextKeyCountry = "country"

// Country 解析价格换算使用的国家代码
// 优先级：country查询参数(两位字母) > GeoIP > 默认国家
func Country(resolver *geoip.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKeyCountry, resolveCountry(c, resolver))
		c.Next()
	}
}

func resolveCountry(c *gin.Context, resolver *geoip.Resolver) string {
	if q := strings.TrimSpace(c.Query("country")); currency.IsCountryCode(q) {
		return currency.NormalizeCode(q)
	}
	addr, ok := geoip.ClientIP(c.GetHeader("X-Forwarded-For"), c.Request.RemoteAddr)
	if !ok {
		return resolver.Default()
	}
	return resolver.Lookup(addr)
}

// GetCountry 当前请求的国家代码
func GetCountry(c *gin.Context) string {
	return c.GetString(contextKeyCountry)
}
