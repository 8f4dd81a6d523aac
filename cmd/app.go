package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"ordering/api"
	"ordering/config"
	"ordering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App 应用程序
type App struct {
	config  *config.Config
	router  *api.Router
	server  *http.Server
	cleanup []func() error
}

// Run 启动 HTTP 服务，收到 SIGINT/SIGTERM 后在 ShutdownTimeout 内优雅关闭
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("backend", a.config.Database.Type))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	return a.Shutdown()
}

// Shutdown 停止接收新请求并释放资源
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	for _, fn := range a.cleanup {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}

	logger.Info("Server stopped")
	return errors.Join(errs...)
}

// Handler 测试使用
func (a *App) Handler() *gin.Engine {
	return a.router.GetEngine()
}
