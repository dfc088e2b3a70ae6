package authgate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intentgate/v1/internal/core/infrastructure/crypto/hash"
	"github.com/intentgate/v1/internal/core/testutil"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// context.go 测试
// ============================================================================

// TestProofSystemContext_DuplicateSetup 测试重复初始化被拒绝
func TestProofSystemContext_DuplicateSetup(t *testing.T) {
	manager := sharedManager(t)

	err := manager.Setup()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

// TestProofSystemContext_NotInitialized 测试未初始化时取用返回错误
func TestProofSystemContext_NotInitialized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	sysCtx := NewProofSystemContext(testutil.NewTestLogger(), cfg)

	require.False(t, sysCtx.Initialized())

	_, _, _, _, err := sysCtx.artifacts()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotInitialized)
}

// TestProofSystemContext_ProveBeforeSetup 测试未初始化时证明返回错误
func TestProofSystemContext_ProveBeforeSetup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	manager := NewManager(testutil.NewTestLogger(), hash.NewHashService(), cfg, nil)

	_, err := manager.ProveAuthorization(context.Background(), testSecret(0x01), &ShutdownCommand{}, 3)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotInitialized)
}

// TestProofSystemContext_UnsupportedScheme 测试不支持的证明方案
func TestProofSystemContext_UnsupportedScheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProvingScheme = "plonk"
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	sysCtx := NewProofSystemContext(testutil.NewTestLogger(), cfg)

	err := sysCtx.Setup()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSetupFailed)
}

// TestProofSystemContext_UnsupportedCurve 测试不支持的曲线
func TestProofSystemContext_UnsupportedCurve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Curve = "bn999"
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	sysCtx := NewProofSystemContext(testutil.NewTestLogger(), cfg)

	err := sysCtx.Setup()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSetupFailed)
}

// TestProofSystemContext_IncompatibleCacheRejected 测试不兼容缓存默认拒绝启动
func TestProofSystemContext_IncompatibleCacheRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	require.NoError(t, os.WriteFile(cfg.KeyCachePath, []byte("XXXX not a key cache"), 0o600))

	sysCtx := NewProofSystemContext(testutil.NewTestLogger(), cfg)
	err := sysCtx.Setup()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrKeyCacheIncompatible)
}

// TestProofSystemContext_IncompatibleCacheRegenerated 测试显式允许时重新生成密钥
func TestProofSystemContext_IncompatibleCacheRegenerated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyCachePath = filepath.Join(t.TempDir(), "keys.bin")
	cfg.AllowKeyRegeneration = true
	require.NoError(t, os.WriteFile(cfg.KeyCachePath, []byte("XXXX not a key cache"), 0o600))

	logger := testutil.NewTestBehavioralLogger()
	sysCtx := NewProofSystemContext(logger, cfg)
	require.NoError(t, sysCtx.Setup())
	require.True(t, sysCtx.Initialized())

	// 重新生成属于破坏性事件，必须有警告日志
	var warned bool
	for _, entry := range logger.Logs() {
		if strings.HasPrefix(entry, "WARN") {
			warned = true
		}
	}
	require.True(t, warned)
}

// TestProofSystemContext_CacheReload 测试重启后复用缓存密钥可验证旧证明
func TestProofSystemContext_CacheReload(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.KeyCachePath = filepath.Join(dir, "keys.bin")

	hashService := hash.NewHashService()

	first := NewManager(testutil.NewTestLogger(), hashService, cfg, nil)
	require.NoError(t, first.Setup())

	secret := testSecret(0x77)
	cmd := &VoteCommand{ProposalID: "prop-1", Approve: true}
	proof, err := first.ProveAuthorization(context.Background(), secret, cmd, 1)
	require.NoError(t, err)
	require.True(t, first.VerifyAuthorization(context.Background(), proof))

	// 模拟进程重启：同一缓存路径新建Manager
	second := NewManager(testutil.NewTestLogger(), hashService, cfg, nil)
	require.NoError(t, second.Setup())
	require.True(t, second.VerifyAuthorization(context.Background(), proof))
}
