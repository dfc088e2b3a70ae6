package authgate

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	cryptointf "github.com/intentgate/v1/pkg/interfaces/infrastructure/crypto"
	logiface "github.com/intentgate/v1/pkg/interfaces/infrastructure/log"
)

// ==================== 意图承诺 ====================
//
// 🎯 **设计目标**：
// 在不暴露用户密钥的前提下，把一条具体命令绑定到一个32字节承诺上。
// 承诺值 = SHA256(secret ‖ 命令序列化字节)，同一 (secret, 命令) 永远
// 得到相同的承诺，哪怕一个字节的篡改都会导致验证失败。
//
// ⚠️ **安全约束**：
// 承诺比较必须走常量时间路径，验证耗时不得泄露首个不匹配字节的位置。

// SecretSize 用户密钥字节长度
const SecretSize = 32

// Secret 用户授权密钥
type Secret [SecretSize]byte

// IntentCommitment 意图承诺
//
// Commitment 绑定密钥与命令内容；Timestamp 和 Nonce 是元数据，
// 不参与承诺哈希的计算。
type IntentCommitment struct {
	Commitment [32]byte       `json:"commitment"`
	Category   IntentCategory `json:"category"`
	Timestamp  uint64         `json:"timestamp"`
	Nonce      uint64         `json:"nonce"`
}

// CommitmentScheme 意图承诺方案
type CommitmentScheme struct {
	logger logiface.Logger
	hash   cryptointf.HashManager
}

// NewCommitmentScheme 创建意图承诺方案
func NewCommitmentScheme(logger logiface.Logger, hash cryptointf.HashManager) *CommitmentScheme {
	return &CommitmentScheme{
		logger: logger,
		hash:   hash,
	}
}

// Create 为命令创建意图承诺
//
// 先对命令做意图分类（未注册类型直接拒绝），再把密钥与命令的
// 完整序列化字节拼接后做 SHA-256。
func (s *CommitmentScheme) Create(secret *Secret, cmd Command) (*IntentCommitment, error) {
	if secret == nil {
		return nil, WrapProvingError("commitment secret", errNilSecret)
	}

	category, _, err := Classify(cmd)
	if err != nil {
		return nil, err
	}

	payload, err := MarshalCommand(cmd)
	if err != nil {
		return nil, err
	}

	preimage := make([]byte, 0, SecretSize+len(payload))
	preimage = append(preimage, secret[:]...)
	preimage = append(preimage, payload...)

	var commitment [32]byte
	copy(commitment[:], s.hash.SHA256(preimage))

	var nonceBytes [8]byte
	if _, err := rand.Read(nonceBytes[:]); err != nil {
		return nil, WrapSerializationError("commitment nonce", err)
	}

	return &IntentCommitment{
		Commitment: commitment,
		Category:   category,
		Timestamp:  uint64(time.Now().Unix()),
		Nonce:      binary.LittleEndian.Uint64(nonceBytes[:]),
	}, nil
}

// Verify 校验承诺是否绑定给定的密钥与命令
//
// 重算承诺哈希后做常量时间比较。分类或序列化失败一律视为不匹配。
func (s *CommitmentScheme) Verify(commitment *IntentCommitment, secret *Secret, cmd Command) bool {
	if commitment == nil || secret == nil {
		return false
	}

	category, _, err := Classify(cmd)
	if err != nil {
		return false
	}
	if category != commitment.Category {
		return false
	}

	payload, err := MarshalCommand(cmd)
	if err != nil {
		return false
	}

	preimage := make([]byte, 0, SecretSize+len(payload))
	preimage = append(preimage, secret[:]...)
	preimage = append(preimage, payload...)

	expected := s.hash.SHA256(preimage)
	return s.hash.ConstantTimeEqual(expected, commitment.Commitment[:])
}
