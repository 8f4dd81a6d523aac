package middleware

import (
	"sync"
	"time"

	"ordering/api/response"
	"ordering/config"
	"ordering/pkg/errors"
	"ordering/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultMaxClients = 10000
	defaultIdleTTL    = 10 * time.Minute
)

// RateLimiter 按客户端 IP 的令牌桶
// 最多跟踪 maxClients 个 IP，空闲超过 idleTTL 的桶被淘汰
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst, maxClients int, idleTTL time.Duration) *RateLimiter {
	if maxClients <= 0 {
		maxClients = defaultMaxClients
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxClients, nil, idleTTL),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow 消耗 key 对应桶中的一个令牌，并刷新该桶的空闲计时
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	rl.limiters.Add(key, limiter)
	rl.mu.Unlock()

	return limiter.Allow()
}

// Tracked 当前跟踪的客户端数
func (rl *RateLimiter) Tracked() int {
	return rl.limiters.Len()
}

func RateLimitMiddleware(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := NewRateLimiter(cfg.Rate, cfg.Burst, cfg.MaxClients, cfg.IdleTTL)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.Allow(ip) {
			c.Next()
			return
		}

		logger.FromContext(c.Request.Context()).Warn("Rate limit exceeded", zap.String("client_ip", ip))
		response.Abort(c, errors.TooManyRequests("too many requests, please try again later"))
	}
}
