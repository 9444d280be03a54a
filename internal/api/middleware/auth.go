package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/blog-engine/pkg/response"
)

// ContextUserIDKey gin context 中保存调用者 id 的 key
const ContextUserIDKey = "user_id"

// Claims 身份服务签发的 token；只关心 sub
type Claims struct {
	jwt.RegisteredClaims
}

// ParseToken 校验 HS256 token 并返回 sub
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), true
}

// Auth 要求合法 token，否则 401
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			response.Unauthorized(c, "authorization header required")
			return
		}
		userID, err := ParseToken(secret, raw)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 有 token 就解析，坏 token 按匿名处理
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearer(c); ok {
			if userID, err := ParseToken(secret, raw); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

// UserID 取当前调用者，匿名时为空串
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
