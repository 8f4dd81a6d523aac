/*
Package retry 以整个 Unit of Work 为单位重试可恢复的持久化失败。

可重试的原因：
  - 乐观锁冲突（shared.ErrConcurrentModification）
  - MySQL 死锁 1213、锁等待超时 1205
  - 事务失效或连接丢失

唯一键冲突、领域校验失败等确定性错误不重试。
*/
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"ordering/config"
	"ordering/domain/shared"
	"ordering/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	mysqlDeadlock        = 1213
	mysqlLockWaitTimeout = 1205
)

// Reason 失败原因分类
type Reason string

const (
	ReasonNone                   Reason = ""
	ReasonConcurrentModification Reason = "concurrent_modification"
	ReasonDeadlock               Reason = "deadlock"
	ReasonLockTimeout            Reason = "lock_timeout"
	ReasonConnectionLost         Reason = "connection_lost"
)

// Config 重试策略
type Config struct {
	Enabled                       bool
	MaxAttempts                   int
	InitialDelay                  time.Duration
	MaxDelay                      time.Duration
	BackoffFactor                 float64
	JitterEnabled                 bool
	RetryOnConcurrentModification bool
	RetryOnDeadlock               bool
	RetryOnLockTimeout            bool
	// RetryPredicate 额外的可重试判断，测试中用于注入
	RetryPredicate func(error) bool
}

var DefaultConfig = Config{
	Enabled:                       true,
	MaxAttempts:                   3,
	InitialDelay:                  100 * time.Millisecond,
	MaxDelay:                      2 * time.Second,
	BackoffFactor:                 2.0,
	JitterEnabled:                 true,
	RetryOnConcurrentModification: true,
	RetryOnDeadlock:               true,
	RetryOnLockTimeout:            true,
}

// FromAppConfig 读取 database.retry 配置段
func FromAppConfig(appConfig *config.Config) Config {
	rc := appConfig.Database.Retry
	return Config{
		Enabled:                       rc.Enabled,
		MaxAttempts:                   rc.MaxAttempts,
		InitialDelay:                  rc.InitialDelay,
		MaxDelay:                      rc.MaxDelay,
		BackoffFactor:                 rc.BackoffFactor,
		JitterEnabled:                 rc.JitterEnabled,
		RetryOnConcurrentModification: rc.RetryOnConcurrentModification,
		RetryOnDeadlock:               rc.RetryOnDeadlock,
		RetryOnLockTimeout:            rc.RetryOnLockTimeout,
	}
}

// Backoff 第 attempt 次失败后的等待时间：InitialDelay * BackoffFactor^(attempt-1)，
// 不超过 MaxDelay，开启抖动时乘以 [0.8, 1.2)
func Backoff(attempt int, cfg Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1))
	delay = math.Min(delay, float64(cfg.MaxDelay))
	if cfg.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	return time.Duration(math.Max(delay, 0))
}

// Classify 判断失败原因，不可识别时返回 ReasonNone
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if errors.Is(err, shared.ErrConcurrentModification) {
		return ReasonConcurrentModification
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDeadlock:
			return ReasonDeadlock
		case mysqlLockWaitTimeout:
			return ReasonLockTimeout
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadlock"):
		return ReasonDeadlock
	case strings.Contains(msg, "lock wait timeout"):
		return ReasonLockTimeout
	case errors.Is(err, gorm.ErrInvalidTransaction),
		strings.Contains(msg, "connection") && strings.Contains(msg, "lost"):
		return ReasonConnectionLost
	}
	return ReasonNone
}

// IsRetryable 按配置开关决定该失败是否重试
func IsRetryable(err error, cfg Config) bool {
	if err == nil {
		return false
	}
	if cfg.RetryPredicate != nil && cfg.RetryPredicate(err) {
		return true
	}
	switch Classify(err) {
	case ReasonConcurrentModification:
		return cfg.RetryOnConcurrentModification
	case ReasonDeadlock:
		return cfg.RetryOnDeadlock
	case ReasonLockTimeout:
		return cfg.RetryOnLockTimeout
	case ReasonConnectionLost:
		return true
	default:
		return false
	}
}

// ExecuteWithRetry 执行 fn；可重试失败按退避等待后整体重跑，ctx 取消时立即返回
func ExecuteWithRetry(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil || !IsRetryable(err, cfg) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			log.Warn("giving up after retryable failures",
				zap.Int("attempts", attempt),
				zap.String("reason", string(Classify(err))),
				zap.Error(err))
			return err
		}

		delay := Backoff(attempt, cfg)
		log.Warn("retrying unit of work",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.MaxAttempts),
			zap.String("reason", string(Classify(err))),
			zap.Duration("delay", delay))

		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
