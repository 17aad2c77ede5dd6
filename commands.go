package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/di"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/dto"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "rhyming-pairs",
		Short:         "Rhyming Pairs 谜题服务：上传、列出、删除每日谜题",
		SilenceUsage:  true,
		SilenceErrors: true,
		// 不带子命令时直接启动服务
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configDir)
		},
	}

	cmd.Version = consts.ApplicationVersion
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "配置目录，默认 ./config")

	cmd.AddCommand(
		newServeCmd(&configDir),
		newReconcileCmd(&configDir),
		newRoutesCmd(&configDir),
	)
	return cmd
}

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configDir)
		},
	}
}

func newReconcileCmd(configDir *string) *cobra.Command {
	var (
		apply bool
		grace time.Duration
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "对比存储桶与谜题表，报告（或删除）孤儿图片",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if grace < 0 {
				return fmt.Errorf("--grace must be >= 0")
			}

			app, cleanup, err := bootstrap(*configDir)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := app.Modules.Puzzle.Service.Reconcile(ctx, dto.ReconcileOptions{
				Apply:       apply,
				GracePeriod: grace,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "删除超过宽限期的孤儿图片（默认只报告）")
	cmd.Flags().DurationVar(&grace, "grace", 0, "孤儿判定宽限期，0 表示使用配置 reconcile.grace_period")
	return cmd
}

func newRoutesCmd(configDir *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "导出路由表到 JSON 文件",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := bootstrap(*configDir)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := exportAPI(buildEngine(app, nil), output); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "✅ 路由已成功导出到 %s\n", output)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "routes.json", "输出文件")
	return cmd
}

// bootstrap 加载配置并组装应用，调用方负责执行 cleanup
func bootstrap(configDir string) (*di.Application, func(), error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Storage.Driver == "local" {
		if err := checkSecurePath(cfg.Storage.LocalPath); err != nil {
			return nil, nil, err
		}
	}
	gin.SetMode(cfg.Server.Mode)

	app, cleanup, err := di.InitializeApplication(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化应用失败: %w", err)
	}
	return app, cleanup, nil
}
