package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/xiebiao/bookstore-api/docs" // swagger 文档

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// @title           Bookstore API
// @version         1.0
// @description     图书商城：目录、订单、购物车、心愿单、书评
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Bearer {access_token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志、指标、链路追踪
	output, closeOutput, err := logOutput(cfg.Log.Output)
	if err != nil {
		log.Fatalf("打开日志输出失败: %v", err)
	}
	defer closeOutput()
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      output,
		EnableColor: cfg.Log.Output == "stdout",
	})

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Fatal("init tracing failed", err, nil)
	}

	// 3. 依赖注入（wire_gen.go）
	engine, cleanup, err := InitializeApp(cfg)
	if err != nil {
		logger.Fatal("initialize app failed", err, nil)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server started", map[string]interface{}{
			"addr":    srv.Addr,
			"mode":    cfg.Server.Mode,
			"redis":   cfg.Redis.Enabled,
			"tracing": cfg.Tracing.Enabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", err, nil)
		}
	}()

	// 4. 优雅关闭：停止接收新请求，等待处理中的请求完成
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", err, nil)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("flush spans failed", err, nil)
	}
	logger.Info("server exited", nil)
}

// logOutput stdout / stderr / 文件路径
func logOutput(target string) (io.Writer, func(), error) {
	switch target {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", target, err)
	}
	return f, func() { _ = f.Close() }, nil
}
