package security

import (
	"net/http"
	"sync"
	"time"

	"quiz_exam_backend/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS 只放行配置里登记的前端来源。刷题页面靠 Cookie 维持登录态，
// 必须逐源回写 Allow-Origin 并开启 Credentials，不能用通配符。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		// 客户端只发 JSON 请求体，Authorization 留给脚本调用的 Bearer 令牌
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Secure 基础安全响应头。答题页不嵌 iframe，直接 DENY
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

// 限流兜底参数：答题是点击密集型操作，窗口要给足余量
const (
	defaultMaxRequests = 100000
	defaultWindow      = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按来源 IP 限流，参数取自 rate_limit 配置段。
// 条目超过三个窗口没有活动就回收，防止 map 无限增长。
func RateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	maxRequests := cfg.MaxRequests
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	window := time.Duration(cfg.WindowMinutes) * time.Minute
	if window <= 0 {
		window = defaultWindow
	}

	clients := make(map[string]*client)
	var mu sync.Mutex

	go func() {
		expiry := window * 3
		if expiry < time.Minute {
			expiry = time.Minute
		}
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > expiry {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	refill := rate.Every(window / time.Duration(maxRequests))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(refill, maxRequests)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		mu.Unlock()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
