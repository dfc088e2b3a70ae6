package authgate

import (
	"bytes"
	"context"
	"time"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// ==================== 授权证明器 ====================
//
// 🎯 **设计目标**：
// 为一条命令生成零知识授权证明：对命令做承诺，填充电路见证，
// 调用Groth16生成证明并序列化为字节流。
//
// ⚠️ **语义约束**：
// 授权级别不足时同样输出证明字节：见证里的公开级别取
// min(所需级别, 实际级别)，电路始终可满足，但验证方按意图类别
// 重建真实的所需级别，公开输入不一致使配对检查必然失败。
// 格式错误的输入（无法分类、无法序列化的命令）才返回错误。

// AuthorizationProof 授权证明
//
// ProofBytes 是序列化后的Groth16证明；Commitment 携带验证所需的
// 公开信息（承诺值和意图类别）。
type AuthorizationProof struct {
	ProofBytes []byte           `json:"proof_bytes"`
	Commitment IntentCommitment `json:"commitment"`
}

// Prover 授权证明器
type Prover struct {
	logger logiface.Logger
	hash   cryptointf.HashManager
	sysCtx *ProofSystemContext
	scheme *CommitmentScheme
}

// NewProver 创建授权证明器
func NewProver(logger logiface.Logger, hash cryptointf.HashManager, sysCtx *ProofSystemContext, scheme *CommitmentScheme) *Prover {
	return &Prover{
		logger: logger,
		hash:   hash,
		sysCtx: sysCtx,
		scheme: scheme,
	}
}

// ProveAuthorization 为命令生成授权证明
//
// 分类失败、序列化失败或系统未初始化时返回错误；授权级别不足
// 不报错，而是产出一个注定无法通过验证的证明。
func (p *Prover) ProveAuthorization(ctx context.Context, secret *Secret, cmd Command, userAuthLevel uint8) (*AuthorizationProof, error) {
	if secret == nil {
		return nil, WrapProvingError("witness", errNilSecret)
	}

	ccs, pk, _, curveID, err := p.sysCtx.artifacts()
	if err != nil {
		return nil, err
	}

	commitment, err := p.scheme.Create(secret, cmd)
	if err != nil {
		return nil, err
	}

	payload, err := MarshalCommand(cmd)
	if err != nil {
		return nil, err
	}

	// 电路见证摘要用Keccak-256，与承诺的SHA-256哈希域分离
	var digest [CommandDigestSize]byte
	copy(digest[:], p.hash.Keccak256(payload))

	if err := ctx.Err(); err != nil {
		return nil, WrapProvingError("context", err)
	}

	// 级别不足时按实际级别填充公开输入，保证见证可满足；
	// 验证方重建的真实级别与之不符，证明无法通过验证
	provingLevel := mustRequiredLevel(commitment.Category)
	if userAuthLevel < provingLevel {
		provingLevel = userAuthLevel
	}

	assignment := &IntentAuthCircuit{
		RequiredLevel: uint64(provingLevel),
		UserLevel:     uint64(userAuthLevel),
	}
	for i := 0; i < len(commitment.Commitment); i++ {
		assignment.Commitment[i] = uint64(commitment.Commitment[i])
	}
	for i := 0; i < SecretSize; i++ {
		assignment.Secret[i] = uint64(secret[i])
	}
	for i := 0; i < CommandDigestSize; i++ {
		assignment.CommandDigest[i] = uint64(digest[i])
	}

	witness, err := frontend.NewWitness(assignment, curveID.ScalarField())
	if err != nil {
		return nil, WrapProvingError("witness", err)
	}

	restore := muteGnarkLogger()
	defer restore()

	start := time.Now()
	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return nil, WrapProvingError("groth16 prove", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, WrapSerializationError("proof", err)
	}

	p.logger.Debugf("生成授权证明: category=%s, 大小=%d字节, 耗时=%v",
		commitment.Category, buf.Len(), time.Since(start))

	return &AuthorizationProof{
		ProofBytes: buf.Bytes(),
		Commitment: *commitment,
	}, nil
}

// mustRequiredLevel 取已分类类别的所需级别
//
// 类别来自 Classify 的输出，这里的查表不会失败。
func mustRequiredLevel(category IntentCategory) uint8 {
	return categoryLevels[category]
}
