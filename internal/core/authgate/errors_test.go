package authgate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// errors.go 测试
// ============================================================================

// TestWrapSetupFailedError 测试包装可信设置失败错误
func TestWrapSetupFailedError(t *testing.T) {
	cause := errors.New("compile error")
	err := WrapSetupFailedError("compile", cause)
	require.Error(t, err)
	require.Contains(t, err.Error(), "setup failed")
	require.Contains(t, err.Error(), "compile")
	require.Contains(t, err.Error(), cause.Error())
	require.True(t, errors.Is(err, ErrSetupFailed))
}

// TestWrapKeyCacheIncompatibleError 测试包装密钥缓存不兼容错误
func TestWrapKeyCacheIncompatibleError(t *testing.T) {
	err := WrapKeyCacheIncompatibleError("/tmp/keys.bin", "bad magic")
	require.Error(t, err)
	require.Contains(t, err.Error(), "/tmp/keys.bin")
	require.Contains(t, err.Error(), "bad magic")
	require.True(t, errors.Is(err, ErrKeyCacheIncompatible))
}

// TestWrapSerializationError 测试包装编解码失败错误
func TestWrapSerializationError(t *testing.T) {
	cause := errors.New("encode error")
	err := WrapSerializationError("proof", cause)
	require.Error(t, err)
	require.Contains(t, err.Error(), "proof")
	require.Contains(t, err.Error(), cause.Error())
	require.True(t, errors.Is(err, ErrSerialization))
}

// TestWrapProvingError 测试包装证明生成失败错误
func TestWrapProvingError(t *testing.T) {
	cause := errors.New("witness error")
	err := WrapProvingError("witness", cause)
	require.Error(t, err)
	require.Contains(t, err.Error(), "witness")
	require.True(t, errors.Is(err, ErrProving))
}

// TestWrapUnclassifiedCommandError 测试包装未注册命令错误
func TestWrapUnclassifiedCommandError(t *testing.T) {
	err := WrapUnclassifiedCommandError(CommandKind("bogus"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
	require.True(t, errors.Is(err, ErrUnclassifiedCommand))
}

// TestWrapAmountExceedsMaxError 测试包装金额超限错误
func TestWrapAmountExceedsMaxError(t *testing.T) {
	err := WrapAmountExceedsMaxError(2000, 1000)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2000")
	require.Contains(t, err.Error(), "1000")
	require.True(t, errors.Is(err, ErrAmountExceedsMax))
}
