package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateToken 生成不透明登录令牌，身份映射存 Redis
func GenerateToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
