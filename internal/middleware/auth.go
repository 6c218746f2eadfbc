package middleware

import (
	"strings"

	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const TokenCookie = "quiz_token"

// AuthMiddleware Cookie 里的不透明令牌经 Redis 换回身份；
// 兼容 Authorization: Bearer 方便脚本调用
func AuthMiddleware(progress *repository.ProgressRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(TokenCookie)
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		id, err := progress.GetToken(token)
		if err != nil || id == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("identity", id)
		c.Set("token", token)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) *repository.Identity {
	v, exists := c.Get("identity")
	if !exists {
		return nil
	}
	id, ok := v.(*repository.Identity)
	if !ok {
		return nil
	}
	return id
}

func GetToken(c *gin.Context) string {
	v, exists := c.Get("token")
	if !exists {
		return ""
	}
	token, _ := v.(string)
	return token
}
