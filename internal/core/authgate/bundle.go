package authgate

import (
	"context"
	"crypto/rand"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"

	"github.com/google/uuid"
)

// ProofBundle 证明包
//
// 一条命令的全部证明材料。AuthProof 始终存在；RangeProof 只在
// 转账/质押类命令上出现；QueryProof 只在查询类命令上出现，
// QueryText 保留被签名的查询串供后续重验。
type ProofBundle struct {
	ID         string              `json:"id"`
	AuthProof  *AuthorizationProof `json:"auth_proof"`
	RangeProof *RangeProof         `json:"range_proof,omitempty"`
	QueryProof *QueryProof         `json:"query_proof,omitempty"`
	QueryText  string              `json:"query_text,omitempty"`
}

// Manager 授权证明管理器
//
// 🎯 **设计理念**：薄实现，专注依赖注入和接口协调
// 🏗️ **架构原则**：Manager只做子组件组装和证明包编排，
// 密码学逻辑全部在子组件里
type Manager struct {
	// ==================== 基础设施服务 ====================
	logger logiface.Logger
	hash   cryptointf.HashManager

	// ==================== 专门的子组件 ====================
	sysCtx      *ProofSystemContext
	scheme      *CommitmentScheme
	prover      *Prover
	validator   *Validator
	rangeModule *RangeProofModule
	queryModule *QueryProofModule

	// ==================== 观测 ====================
	metrics *Metrics

	// ==================== 配置参数 ====================
	cfg *Config
}

// NewManager 创建授权证明管理器
//
// 🏗️ **初始化顺序**：配置 → 证明系统上下文 → 子组件 → 组装Manager。
// metrics 可以为 nil，此时不做指标统计。
func NewManager(logger logiface.Logger, hash cryptointf.HashManager, cfg *Config, metrics *Metrics) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sysCtx := NewProofSystemContext(logger, cfg)
	scheme := NewCommitmentScheme(logger, hash)

	return &Manager{
		logger: logger,
		hash:   hash,

		sysCtx:      sysCtx,
		scheme:      scheme,
		prover:      NewProver(logger, hash, sysCtx, scheme),
		validator:   NewValidator(logger, sysCtx),
		rangeModule: NewRangeProofModule(logger, hash),
		queryModule: NewQueryProofModule(hash),

		metrics: metrics,
		cfg:     cfg,
	}
}

// Setup 初始化证明系统（委托给证明系统上下文）
func (m *Manager) Setup() error {
	return m.sysCtx.Setup()
}

// Commitments 返回意图承诺方案
func (m *Manager) Commitments() *CommitmentScheme {
	return m.scheme
}

// RangeProofs 返回范围证明模块
func (m *Manager) RangeProofs() *RangeProofModule {
	return m.rangeModule
}

// QueryProofs 返回查询证明模块
func (m *Manager) QueryProofs() *QueryProofModule {
	return m.queryModule
}

// ProveAuthorization 生成单条授权证明（委托给Prover子组件）
func (m *Manager) ProveAuthorization(ctx context.Context, secret *Secret, cmd Command, userAuthLevel uint8) (*AuthorizationProof, error) {
	proof, err := m.prover.ProveAuthorization(ctx, secret, cmd, userAuthLevel)
	m.metrics.RecordProofGenerated(err == nil)
	return proof, err
}

// VerifyAuthorization 验证单条授权证明（委托给Validator子组件）
func (m *Manager) VerifyAuthorization(ctx context.Context, proof *AuthorizationProof) bool {
	valid := m.validator.VerifyAuthorization(ctx, proof)
	m.metrics.RecordVerification(valid)
	return valid
}

// CreateBundle 为命令生成完整证明包
//
// 授权证明必选；转账/质押类命令附带金额范围证明（随机致盲因子，
// 上限取自配置）；查询类命令附带查询证明，被签名的查询串是命令的
// 规范文本。
func (m *Manager) CreateBundle(ctx context.Context, secret *Secret, cmd Command, userAuthLevel uint8) (*ProofBundle, error) {
	authProof, err := m.ProveAuthorization(ctx, secret, cmd, userAuthLevel)
	if err != nil {
		return nil, err
	}

	bundle := &ProofBundle{
		ID:        uuid.NewString(),
		AuthProof: authProof,
	}

	// 证明包组合只由意图类别决定
	switch authProof.Commitment.Category {
	case CategoryTransfer, CategoryStake:
		bounded, ok := cmd.(BoundedCommand)
		if !ok {
			return nil, WrapProvingError("range proof amount", errMissingAmount)
		}

		var blinding [32]byte
		if _, err := rand.Read(blinding[:]); err != nil {
			return nil, WrapProvingError("range proof blinding", err)
		}

		rangeProof, err := m.rangeModule.Create(bounded.BoundedAmount(), m.cfg.MaxBoundedAmount, &blinding)
		if err != nil {
			return nil, err
		}
		bundle.RangeProof = rangeProof
	}

	if authProof.Commitment.Category == CategoryQuery {
		queryText, err := CanonicalCommandText(cmd)
		if err != nil {
			return nil, err
		}

		queryProof, err := m.queryModule.Create(queryText, secret)
		if err != nil {
			return nil, err
		}
		bundle.QueryProof = queryProof
		bundle.QueryText = queryText
	}

	m.logger.Debugf("生成证明包: id=%s, category=%s, range=%v, query=%v",
		bundle.ID, authProof.Commitment.Category, bundle.RangeProof != nil, bundle.QueryProof != nil)

	return bundle, nil
}

// VerifyBundle 验证证明包
//
// 按授权证明、范围证明、查询证明的顺序短路验证。查询证明的重验
// 需要密钥，secret 为 nil 而包里带查询证明时直接判为无效。
func (m *Manager) VerifyBundle(ctx context.Context, bundle *ProofBundle, secret *Secret) bool {
	if bundle == nil || bundle.AuthProof == nil {
		return false
	}

	if !m.VerifyAuthorization(ctx, bundle.AuthProof) {
		return false
	}

	if bundle.RangeProof != nil {
		if !m.rangeModule.Verify(bundle.RangeProof, m.cfg.MaxBoundedAmount) {
			return false
		}
	}

	if bundle.QueryProof != nil {
		if secret == nil {
			return false
		}
		if !m.queryModule.Verify(bundle.QueryProof, bundle.QueryText, secret) {
			return false
		}
	}

	return true
}
