package authgate

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/intentgate/v1/internal/core/infrastructure/crypto/hash"
	"github.com/intentgate/v1/internal/core/testutil"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// 测试共享辅助
// ============================================================================
//
// Groth16可信设置在测试进程里只做一次，所有需要完整证明系统的
// 测试共享同一个Manager实例。

var (
	sharedOnce     sync.Once
	sharedInstance *Manager
	sharedSetupErr error
)

// sharedManager 返回进程内共享的、已完成可信设置的Manager
func sharedManager(t *testing.T) *Manager {
	t.Helper()

	sharedOnce.Do(func() {
		dir, err := os.MkdirTemp("", "authgate_test_*")
		if err != nil {
			sharedSetupErr = err
			return
		}

		cfg := DefaultConfig()
		cfg.KeyCachePath = filepath.Join(dir, "keys.bin")

		sharedInstance = NewManager(testutil.NewTestLogger(), hash.NewHashService(), cfg, nil)
		sharedSetupErr = sharedInstance.Setup()
	})

	require.NoError(t, sharedSetupErr)
	return sharedInstance
}

// testSecret 返回以固定模式填充的测试密钥
func testSecret(fill byte) *Secret {
	var s Secret
	for i := range s {
		s[i] = fill
	}
	return &s
}
