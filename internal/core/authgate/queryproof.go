package authgate

import (
	"encoding/binary"
	"time"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
)

// ==================== 查询证明 ====================
//
// 🎯 **设计目标**：
// 证明某次只读查询确实由密钥持有者在特定时刻发起。签名 =
// DoubleSHA256(查询哈希 ‖ 时间戳(LE) ‖ 密钥)，验证方重算后做
// 常量时间比较。重放的旧证明因时间戳参与签名而无法冒充新请求。

// QueryProof 查询证明
type QueryProof struct {
	QueryHash [32]byte `json:"query_hash"`
	Timestamp uint64   `json:"timestamp"`
	Signature []byte   `json:"signature"`
}

// QueryProofModule 查询证明模块
type QueryProofModule struct {
	hash cryptointf.HashManager
}

// NewQueryProofModule 创建查询证明模块
func NewQueryProofModule(hash cryptointf.HashManager) *QueryProofModule {
	return &QueryProofModule{hash: hash}
}

// signatureInput 构造签名哈希的输入
func (m *QueryProofModule) signatureInput(queryHash [32]byte, timestamp uint64, secret *Secret) []byte {
	var tsBytes [8]byte
	binary.LittleEndian.PutUint64(tsBytes[:], timestamp)

	input := make([]byte, 0, 32+8+SecretSize)
	input = append(input, queryHash[:]...)
	input = append(input, tsBytes[:]...)
	input = append(input, secret[:]...)
	return input
}

// Create 为查询串创建查询证明
func (m *QueryProofModule) Create(query string, secret *Secret) (*QueryProof, error) {
	if secret == nil {
		return nil, WrapProvingError("query proof", errNilSecret)
	}

	var queryHash [32]byte
	copy(queryHash[:], m.hash.SHA256([]byte(query)))

	timestamp := uint64(time.Now().Unix())
	signature := m.hash.DoubleSHA256(m.signatureInput(queryHash, timestamp, secret))

	return &QueryProof{
		QueryHash: queryHash,
		Timestamp: timestamp,
		Signature: signature,
	}, nil
}

// Verify 校验查询证明是否由给定密钥对给定查询串签发
//
// 查询哈希和签名都要匹配，比较走常量时间路径。
func (m *QueryProofModule) Verify(proof *QueryProof, query string, secret *Secret) bool {
	if proof == nil || secret == nil {
		return false
	}

	expectedHash := m.hash.SHA256([]byte(query))
	if !m.hash.ConstantTimeEqual(expectedHash, proof.QueryHash[:]) {
		return false
	}

	expectedSig := m.hash.DoubleSHA256(m.signatureInput(proof.QueryHash, proof.Timestamp, secret))
	return m.hash.ConstantTimeEqual(expectedSig, proof.Signature)
}
