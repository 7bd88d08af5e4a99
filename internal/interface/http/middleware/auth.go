package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

const (
	contextKeySubject = "subject"
	contextKeyRole    = "role"
)

// AuthMiddleware 管理端JWT认证中间件
// Token由外部认证服务签发，这里只校验签名与有效期
type AuthMiddleware struct {
	verifier *jwt.Verifier
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(verifier *jwt.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth 要求携带有效的Bearer Token
//
//	admin := v1.Group("/admin")
//	admin.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			response.Abort(c, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误"))
			return
		}

		claims, err := m.verifier.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			response.Abort(c, err) // ErrTokenExpired、ErrInvalidToken
			return
		}

		c.Set(contextKeySubject, claims.Subject)
		c.Set(contextKeyRole, claims.Role)
		c.Next()
	}
}

// GetSubject 当前Token的subject，未认证时为空
func GetSubject(c *gin.Context) string {
	return c.GetString(contextKeySubject)
}
