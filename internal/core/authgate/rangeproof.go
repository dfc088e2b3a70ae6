package authgate

import (
	"encoding/binary"
	"math/bits"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"
)

// ==================== 范围证明 ====================
//
// 🎯 **设计目标**：
// 证明某个隐藏金额不超过公开上限，同时不暴露金额本身。
// 承诺值 = SHA256(amount_le ‖ blinding)，证明载荷携带
// (max-amount) 差值所需的位数和差值哈希。
//
// ⚠️ **强度说明**：
// 这是结构化的简化构造，不是完整的Bulletproofs。位数承诺只约束
// 差值的数量级，换用成熟的范围证明库是后续的独立升级项。
//
// ⚠️ **前置校验**：
// amount > maxAmount 必须在任何哈希计算之前被拒绝，
// 绝不生成一个注定自相矛盾的证明。

// rangeProofSize 证明载荷长度：位数(u32) + 差值哈希(32字节)
const rangeProofSize = 4 + 32

// RangeProof 金额范围证明
type RangeProof struct {
	Commitment [32]byte `json:"commitment"`
	Proof      []byte   `json:"proof"`
}

// RangeProofModule 范围证明模块
type RangeProofModule struct {
	logger logiface.Logger
	hash   cryptointf.HashManager
}

// NewRangeProofModule 创建范围证明模块
func NewRangeProofModule(logger logiface.Logger, hash cryptointf.HashManager) *RangeProofModule {
	return &RangeProofModule{
		logger: logger,
		hash:   hash,
	}
}

// Create 为隐藏金额创建范围证明
//
// amount 超出 maxAmount 时返回 ErrAmountExceedsMax。
func (m *RangeProofModule) Create(amount, maxAmount uint64, blinding *[32]byte) (*RangeProof, error) {
	if amount > maxAmount {
		return nil, WrapAmountExceedsMaxError(amount, maxAmount)
	}
	if blinding == nil {
		return nil, WrapProvingError("range proof blinding", errNilSecret)
	}

	var amountBytes [8]byte
	binary.LittleEndian.PutUint64(amountBytes[:], amount)

	preimage := make([]byte, 0, 8+32)
	preimage = append(preimage, amountBytes[:]...)
	preimage = append(preimage, blinding[:]...)

	var commitment [32]byte
	copy(commitment[:], m.hash.SHA256(preimage))

	diff := maxAmount - amount
	var diffBytes [8]byte
	binary.LittleEndian.PutUint64(diffBytes[:], diff)

	proof := make([]byte, 0, rangeProofSize)
	var bitsBytes [4]byte
	binary.LittleEndian.PutUint32(bitsBytes[:], uint32(bits.Len64(diff)))
	proof = append(proof, bitsBytes[:]...)
	proof = append(proof, m.hash.SHA256(diffBytes[:])...)

	return &RangeProof{
		Commitment: commitment,
		Proof:      proof,
	}, nil
}

// Verify 对公开上限做结构校验
//
// 检查载荷长度和差值位数是否与上限的数量级一致。
func (m *RangeProofModule) Verify(proof *RangeProof, maxAmount uint64) bool {
	if proof == nil || len(proof.Proof) != rangeProofSize {
		return false
	}

	diffBits := binary.LittleEndian.Uint32(proof.Proof[:4])
	return diffBits <= uint32(bits.Len64(maxAmount))
}
