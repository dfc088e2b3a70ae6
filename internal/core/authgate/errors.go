// Package authgate provides error definitions for intent authorization proof operations.
package authgate

import (
	"errors"
	"fmt"
)

// ============================================================================
//                            授权证明错误定义
// ============================================================================

var (
	// ErrSetupFailed 可信设置失败错误（致命，启动中止）
	ErrSetupFailed = errors.New("proof system setup failed")

	// ErrNotInitialized 证明系统未初始化错误
	ErrNotInitialized = errors.New("proof system not initialized")

	// ErrAlreadyInitialized 证明系统重复初始化错误
	ErrAlreadyInitialized = errors.New("proof system already initialized")

	// ErrKeyCacheIncompatible 密钥缓存文件不兼容错误
	ErrKeyCacheIncompatible = errors.New("key cache file incompatible")

	// ErrSerialization 命令/证明编解码失败错误
	ErrSerialization = errors.New("serialization failed")

	// ErrProving 证明生成失败错误（电路不可满足或见证格式错误）
	ErrProving = errors.New("proof generation failed")

	// ErrUnclassifiedCommand 未注册命令类型错误（显式拒绝，不做静默兜底）
	ErrUnclassifiedCommand = errors.New("unclassified command kind")

	// ErrUnsupportedScheme 不支持的证明方案错误
	ErrUnsupportedScheme = errors.New("unsupported proving scheme")

	// ErrUnsupportedCurve 不支持的椭圆曲线错误
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrAmountExceedsMax 金额超出上限错误（在任何密码学计算之前拒绝）
	ErrAmountExceedsMax = errors.New("amount exceeds maximum")
)

// ============================================================================
//                               错误包装函数
// ============================================================================

// WrapSetupFailedError 包装可信设置失败错误
func WrapSetupFailedError(stage string, err error) error {
	return fmt.Errorf("%w: stage=%s, cause=%v", ErrSetupFailed, stage, err)
}

// WrapKeyCacheIncompatibleError 包装密钥缓存不兼容错误
func WrapKeyCacheIncompatibleError(path, reason string) error {
	return fmt.Errorf("%w: path=%s, reason=%s", ErrKeyCacheIncompatible, path, reason)
}

// WrapSerializationError 包装编解码失败错误
func WrapSerializationError(what string, err error) error {
	return fmt.Errorf("%w: what=%s, cause=%v", ErrSerialization, what, err)
}

// WrapProvingError 包装证明生成失败错误
func WrapProvingError(reason string, err error) error {
	return fmt.Errorf("%w: reason=%s, cause=%v", ErrProving, reason, err)
}

// WrapUnclassifiedCommandError 包装未注册命令类型错误
func WrapUnclassifiedCommandError(kind CommandKind) error {
	return fmt.Errorf("%w: kind=%s", ErrUnclassifiedCommand, kind)
}

// WrapAmountExceedsMaxError 包装金额超限错误
func WrapAmountExceedsMaxError(amount, max uint64) error {
	return fmt.Errorf("%w: amount=%d, max=%d", ErrAmountExceedsMax, amount, max)
}
