package authgate

import (
	"bytes"
	"context"

	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// ==================== 授权验证器 ====================
//
// 🎯 **设计目标**：
// 只凭证明字节和承诺中的公开信息判定授权是否成立，不接触用户密钥。
// 验证是纯只读操作，同一份证明验证任意多次结果一致。
//
// ⚠️ **严格拒绝**：
// 任何解析失败、类别未注册或配对检查失败都返回 false，
// 验证路径绝不 panic，也不向调用方泄露失败的具体阶段。

// Validator 授权验证器
type Validator struct {
	logger logiface.Logger
	sysCtx *ProofSystemContext
}

// NewValidator 创建授权验证器
func NewValidator(logger logiface.Logger, sysCtx *ProofSystemContext) *Validator {
	return &Validator{
		logger: logger,
		sysCtx: sysCtx,
	}
}

// VerifyAuthorization 验证授权证明
//
// 公开输入由承诺值和意图类别对应的所需级别重建，
// 证明字节无法解码或配对检查失败时返回 false。
func (v *Validator) VerifyAuthorization(ctx context.Context, proof *AuthorizationProof) bool {
	if proof == nil || len(proof.ProofBytes) == 0 {
		return false
	}
	if ctx.Err() != nil {
		return false
	}

	_, _, vk, curveID, err := v.sysCtx.artifacts()
	if err != nil {
		return false
	}

	required, err := RequiredLevel(proof.Commitment.Category)
	if err != nil {
		return false
	}

	groth16Proof := groth16.NewProof(curveID)
	if _, err := groth16Proof.ReadFrom(bytes.NewReader(proof.ProofBytes)); err != nil {
		return false
	}

	public := &IntentAuthCircuit{
		RequiredLevel: uint64(required),
	}
	for i := 0; i < len(proof.Commitment.Commitment); i++ {
		public.Commitment[i] = uint64(proof.Commitment.Commitment[i])
	}

	publicWitness, err := frontend.NewWitness(public, curveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false
	}

	restore := muteGnarkLogger()
	defer restore()

	if err := groth16.Verify(groth16Proof, vk, publicWitness); err != nil {
		v.logger.Debugf("授权证明验证未通过: category=%s", proof.Commitment.Category)
		return false
	}

	v.logger.Debugf("授权证明验证通过: category=%s", proof.Commitment.Category)
	return true
}
