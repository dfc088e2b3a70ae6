// Package app 负责应用的依赖注入组装
package app

import (
	appconfig "github.com/intentgate/v1/internal/config"
	"github.com/intentgate/v1/internal/core/authgate"
	cryptomodule "github.com/intentgate/v1/internal/core/infrastructure/crypto"
	logmodule "github.com/intentgate/v1/internal/core/infrastructure/log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// New 组装应用
//
// 🏗️ **组装顺序**：配置 → 基础设施（日志/哈希/指标）→ 授权证明模块。
// extra 用于追加调用方自己的 fx 选项（例如 fx.Invoke 的入口逻辑）。
// fx框架自身的装配日志关闭，运行日志统一走结构化日志体系。
func New(cfg *appconfig.Config, extra ...fx.Option) *fx.App {
	options := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(ProvideGateConfig),
		fx.Provide(ProvideRegisterer),
		logmodule.Module(),
		cryptomodule.Module(),
		authgate.Module(),
		fx.NopLogger,
	}
	options = append(options, extra...)

	return fx.New(options...)
}

// ProvideGateConfig 把应用配置映射为授权证明模块配置
func ProvideGateConfig(cfg *appconfig.Config) *authgate.Config {
	return &authgate.Config{
		ProvingScheme:        cfg.Gate.ProvingScheme,
		Curve:                cfg.Gate.Curve,
		KeyCachePath:         cfg.Gate.KeyCachePath,
		AllowKeyRegeneration: cfg.Gate.AllowKeyRegeneration,
		MaxBoundedAmount:     cfg.Gate.MaxBoundedAmount,
	}
}

// ProvideRegisterer 提供指标注册器
func ProvideRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}
