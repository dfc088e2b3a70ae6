package authgate

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// ==================== 证明系统上下文 ====================
//
// 🎯 **设计目标**：
// 持有编译后的约束系统与证明/验证密钥，作为显式依赖注入给证明器
// 和验证器，不使用任何包级全局状态。Setup 只允许成功执行一次，
// 未初始化时的任何取用都返回 ErrNotInitialized 而不是 panic。
//
// ⚠️ **密钥稳定性约束**：
// 缓存文件存在且兼容时必须复用其中的密钥；不兼容时默认拒绝启动，
// 只有显式开启 AllowKeyRegeneration 才重新生成，并记录警告日志，
// 因为重新生成会使所有历史证明失效。

// ProofSystemContext 证明系统上下文
type ProofSystemContext struct {
	logger logiface.Logger
	cfg    *Config

	mu          sync.Mutex
	initialized bool
	curveID     ecc.ID
	ccs         constraint.ConstraintSystem
	pk          groth16.ProvingKey
	vk          groth16.VerifyingKey
}

// NewProofSystemContext 创建证明系统上下文
func NewProofSystemContext(logger logiface.Logger, cfg *Config) *ProofSystemContext {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ProofSystemContext{
		logger: logger,
		cfg:    cfg,
	}
}

// muteGnarkLogger 静默gnark内部日志
//
// gnark 默认向stdout输出进度日志，与结构化日志体系冲突，
// 编译和可信设置期间统一关闭，结束后恢复。
func muteGnarkLogger() func() {
	previous := gnarklogger.Logger()
	gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	return func() {
		gnarklogger.Set(previous)
	}
}

// resolveCurve 解析配置中的曲线名称
func resolveCurve(name string) (ecc.ID, error) {
	switch name {
	case "bn254":
		return ecc.BN254, nil
	case "bls12-381":
		return ecc.BLS12_381, nil
	default:
		return 0, WrapSetupFailedError("curve", ErrUnsupportedCurve)
	}
}

// Setup 初始化证明系统
//
// 编译授权电路，然后加载或生成Groth16密钥对。重复调用返回
// ErrAlreadyInitialized。
func (c *ProofSystemContext) Setup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}

	if c.cfg.ProvingScheme != "groth16" {
		return WrapSetupFailedError("scheme", ErrUnsupportedScheme)
	}

	curveID, err := resolveCurve(c.cfg.Curve)
	if err != nil {
		return err
	}

	restore := muteGnarkLogger()
	defer restore()

	start := time.Now()
	ccs, err := frontend.Compile(curveID.ScalarField(), r1cs.NewBuilder, &IntentAuthCircuit{})
	if err != nil {
		return WrapSetupFailedError("compile", err)
	}

	pk, vk, err := c.loadOrGenerateKeys(ccs, curveID)
	if err != nil {
		return err
	}

	c.curveID = curveID
	c.ccs = ccs
	c.pk = pk
	c.vk = vk
	c.initialized = true

	c.logger.Infof("证明系统初始化完成: scheme=%s, curve=%s, constraints=%d, 耗时=%v",
		c.cfg.ProvingScheme, c.cfg.Curve, ccs.GetNbConstraints(), time.Since(start))

	return nil
}

// loadOrGenerateKeys 加载密钥缓存，缺失或（在允许时）不兼容则重新生成
func (c *ProofSystemContext) loadOrGenerateKeys(ccs constraint.ConstraintSystem, curveID ecc.ID) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	path := c.cfg.KeyCachePath

	pk, vk, err := loadKeyCache(path, curveID)
	if err == nil {
		c.logger.Debugf("从缓存加载密钥: path=%s", path)
		return pk, vk, nil
	}

	if !os.IsNotExist(err) {
		if !errors.Is(err, ErrKeyCacheIncompatible) {
			return nil, nil, WrapSetupFailedError("key cache load", err)
		}
		if !c.cfg.AllowKeyRegeneration {
			return nil, nil, err
		}
		// 破坏性事件：旧密钥作废后，历史证明全部失效
		c.logger.Warnf("密钥缓存不兼容，按配置重新生成密钥，历史证明将全部失效: %v", err)
	}

	pk, vk, err = groth16.Setup(ccs)
	if err != nil {
		return nil, nil, WrapSetupFailedError("groth16 setup", err)
	}

	if err := saveKeyCache(path, curveID, pk, vk); err != nil {
		return nil, nil, WrapSetupFailedError("key cache save", err)
	}
	c.logger.Debugf("生成并缓存新密钥: path=%s", path)

	return pk, vk, nil
}

// artifacts 返回已初始化的证明产物
func (c *ProofSystemContext) artifacts() (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, ecc.ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil, nil, nil, 0, ErrNotInitialized
	}
	return c.ccs, c.pk, c.vk, c.curveID, nil
}

// Initialized 返回证明系统是否已完成初始化
func (c *ProofSystemContext) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}
