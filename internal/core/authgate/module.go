package authgate

import (
	"context"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// ModuleParams 定义授权证明模块的依赖参数
type ModuleParams struct {
	fx.In

	Logger      logiface.Logger
	HashManager cryptointf.HashManager
	Config      *Config
	Registerer  prometheus.Registerer `optional:"true"`
}

// Module 返回授权证明模块
//
// 证明系统的可信设置在 OnStart 阶段执行，设置失败视为致命错误，
// 直接中止启动。
func Module() fx.Option {
	return fx.Module("authgate",
		fx.Provide(ProvideManager),
	)
}

// ProvideManager 提供授权证明管理器
func ProvideManager(params ModuleParams, lc fx.Lifecycle) *Manager {
	manager := NewManager(params.Logger, params.HashManager, params.Config, NewMetrics(params.Registerer))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return manager.Setup()
		},
	})

	return manager
}
