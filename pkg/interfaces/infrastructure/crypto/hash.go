// Package crypto 提供系统的哈希管理接口定义
//
// 🔐 **哈希管理服务 (Hash Management Service)**
//
// 本文件定义了意图授权网关的哈希计算接口，专注于：
// - 多算法支持：SHA256（承诺/范围证明/查询哈希）、Keccak256（电路见证
//   的命令摘要）、双重SHA256（查询签名）
// - 安全比较：哈希值的常量时间比较，避免时序侧信道
//
// 🎯 **核心功能**
// - HashManager：哈希管理器接口，提供完整的哈希计算服务
//
// 🏗️ **设计原则**
// - 算法集中：所有承诺/签名哈希统一经过本接口，便于未来替换为电路友好哈希
// - 安全可靠：常量时间比较作为接口的一部分，而非调用方的自觉
//
// 🔗 **组件关系**
// - HashManager：被承诺方案、证明器、验证器、范围证明、查询证明使用
package crypto

// HashManager 定义哈希计算相关接口
type HashManager interface {
	// SHA256 计算SHA-256哈希
	//
	// 参数：
	//   - data: 待哈希的数据
	//
	// 返回：
	//   - []byte: 32字节哈希值
	SHA256(data []byte) []byte

	// DoubleSHA256 计算双重SHA-256哈希
	DoubleSHA256(data []byte) []byte

	// Keccak256 计算Keccak-256哈希
	Keccak256(data []byte) []byte

	// ConstantTimeEqual 常量时间比较两个哈希值
	//
	// 长度不同直接返回false；长度相同时比较耗时与内容无关。
	ConstantTimeEqual(a, b []byte) bool
}
