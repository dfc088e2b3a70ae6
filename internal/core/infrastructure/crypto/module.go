// Package crypto 提供密码学基础设施的依赖注入模块
package crypto

import (
	"github.com/intentgate/v1/internal/core/infrastructure/crypto/hash"
	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	"go.uber.org/fx"
)

// ModuleOutput 定义密码学模块的输出结构
type ModuleOutput struct {
	fx.Out

	HashManager cryptointf.HashManager // 哈希管理器接口
}

// Module 返回密码学基础设施模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 提供密码学服务
func ProvideServices() ModuleOutput {
	return ModuleOutput{
		HashManager: hash.NewHashService(),
	}
}
