package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	_ "github.com/xiebiao/library/docs"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/tracing"
)

// @title        Library API
// @version      1.0
// @description  图书馆借阅台账:图书、会员、借阅记录
// @host         localhost:8000
// @BasePath     /
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "library",
		Short:        "图书馆借阅服务",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径(默认搜索 ./config/config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "只执行数据库迁移",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}
			return migrate(cfg)
		},
	})
	return root
}

// serve 启动HTTP服务,收到SIGINT/SIGTERM后优雅退出
func serve(ctx context.Context, cfg *config.Config) error {
	log, err := provideLogger(cfg)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("关闭Tracer失败", slog.Any("error", err))
			}
		}()
	}

	engine, cleanup, err := buildApp(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", slog.String("addr", srv.Addr), slog.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	log.Info("服务已退出")
	return nil
}

// migrate 建表/补齐索引
func migrate(cfg *config.Config) error {
	log, err := provideLogger(cfg)
	if err != nil {
		return err
	}

	cfg.Database.AutoMigrate = false
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("数据库迁移完成")
	return nil
}
