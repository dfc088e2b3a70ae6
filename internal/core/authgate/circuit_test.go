package authgate

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// circuit.go 测试
// ============================================================================

// circuitAssignment 构造一份完整的电路见证
func circuitAssignment(secret *Secret, digest [CommandDigestSize]byte, commitment [32]byte, required, user uint8) *IntentAuthCircuit {
	assignment := &IntentAuthCircuit{
		RequiredLevel: uint64(required),
		UserLevel:     uint64(user),
	}
	for i := 0; i < len(commitment); i++ {
		assignment.Commitment[i] = uint64(commitment[i])
	}
	for i := 0; i < SecretSize; i++ {
		assignment.Secret[i] = uint64(secret[i])
	}
	for i := 0; i < CommandDigestSize; i++ {
		assignment.CommandDigest[i] = uint64(digest[i])
	}
	return assignment
}

// TestIntentAuthCircuit_Compile 测试授权电路可编译
func TestIntentAuthCircuit_Compile(t *testing.T) {
	_, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &IntentAuthCircuit{})
	require.NoError(t, err)
}

// TestIntentAuthCircuit_SufficientLevel 测试级别足够时见证可满足
func TestIntentAuthCircuit_SufficientLevel(t *testing.T) {
	secret := testSecret(0x11)
	var digest [CommandDigestSize]byte
	for i := range digest {
		digest[i] = byte(i + 1)
	}
	var commitment [32]byte
	commitment[0] = 0x42

	witness := circuitAssignment(secret, digest, commitment, 2, 2)
	require.NoError(t, test.IsSolved(&IntentAuthCircuit{}, witness, ecc.BN254.ScalarField()))

	// 级别高于所需同样可满足
	witness = circuitAssignment(secret, digest, commitment, 2, 3)
	require.NoError(t, test.IsSolved(&IntentAuthCircuit{}, witness, ecc.BN254.ScalarField()))
}

// TestIntentAuthCircuit_InsufficientLevel 测试级别不足时见证不可满足
func TestIntentAuthCircuit_InsufficientLevel(t *testing.T) {
	secret := testSecret(0x11)
	var digest [CommandDigestSize]byte
	for i := range digest {
		digest[i] = byte(i + 1)
	}
	var commitment [32]byte

	witness := circuitAssignment(secret, digest, commitment, 3, 1)
	require.Error(t, test.IsSolved(&IntentAuthCircuit{}, witness, ecc.BN254.ScalarField()))
}

// TestIntentAuthCircuit_ZeroSecretRejected 测试全零密钥使绑定约束不可满足
func TestIntentAuthCircuit_ZeroSecretRejected(t *testing.T) {
	var zeroSecret Secret
	var digest [CommandDigestSize]byte
	for i := range digest {
		digest[i] = byte(i + 1)
	}
	var commitment [32]byte

	witness := circuitAssignment(&zeroSecret, digest, commitment, 0, 1)
	require.Error(t, test.IsSolved(&IntentAuthCircuit{}, witness, ecc.BN254.ScalarField()))
}
