package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/intentgate/v1/internal/app"
	appconfig "github.com/intentgate/v1/internal/config"
	"github.com/intentgate/v1/internal/core/authgate"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const version = "1.0.0"

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "authgated",
	Short: "意图授权证明守护进程",
	Long: `authgated 为设备端助手的命令调度提供零知识授权证明服务:
- 对调度命令做意图分类和承诺
- 生成/验证 Groth16 授权证明
- 转账/质押命令附带金额范围证明
- 查询命令附带查询证明`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

// versionCmd 版本命令
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("authgated v%s\n", version)
	},
}

// demoCmd 演示命令：对一条样例转账做完整的证明包生成和验证
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "生成并验证一个样例证明包",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

func loadConfig() (*appconfig.Config, error) {
	if configPath == "" {
		return appconfig.Default(), nil
	}
	return appconfig.Load(configPath)
}

// runDaemon 启动守护进程，阻塞直到收到退出信号
func runDaemon() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	fxApp := app.New(cfg, fx.Invoke(func(manager *authgate.Manager) {
		// 引用Manager以触发其生命周期钩子（可信设置）
		_ = manager
	}))

	fxApp.Run()
	return nil
}

// runDemo 生成一份样例转账的证明包并原地验证
func runDemo() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	run := func(manager *authgate.Manager, shutdowner fx.Shutdowner) error {
		ctx := context.Background()

		var secret authgate.Secret
		if _, err := rand.Read(secret[:]); err != nil {
			return fmt.Errorf("生成演示密钥失败: %w", err)
		}

		cmd := &authgate.TransferCommand{
			To:     "demo-recipient",
			Amount: 42,
			Memo:   "authgated demo",
		}

		bundle, err := manager.CreateBundle(ctx, &secret, cmd, 2)
		if err != nil {
			return fmt.Errorf("生成证明包失败: %w", err)
		}

		fmt.Printf("证明包 id=%s\n", bundle.ID)
		fmt.Printf("  授权证明: %d 字节\n", len(bundle.AuthProof.ProofBytes))
		fmt.Printf("  范围证明: %v\n", bundle.RangeProof != nil)
		fmt.Printf("  验证结果: %v\n", manager.VerifyBundle(ctx, bundle, &secret))

		return shutdowner.Shutdown()
	}

	fxApp := app.New(cfg, fx.Invoke(func(lc fx.Lifecycle, manager *authgate.Manager, shutdowner fx.Shutdowner) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					if err := run(manager, shutdowner); err != nil {
						fmt.Fprintf(os.Stderr, "错误: %v\n", err)
						_ = shutdowner.Shutdown(fx.ExitCode(1))
					}
				}()
				return nil
			},
		})
	}))

	fxApp.Run()
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认使用内置配置）")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
