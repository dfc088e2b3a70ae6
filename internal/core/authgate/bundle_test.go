package authgate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// bundle.go 测试
// ============================================================================

// TestCreateBundle_Composition 测试证明包按意图类别组合
func TestCreateBundle_Composition(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x88)

	cases := []struct {
		name      string
		cmd       Command
		level     uint8
		wantRange bool
		wantQuery bool
	}{
		{"transfer", &TransferCommand{To: "a", Amount: 100}, 2, true, false},
		{"stake", &StakeCommand{Validator: "v", Amount: 50}, 2, true, false},
		{"query", &QueryBalanceCommand{Account: "a"}, 0, false, true},
		{"system", &ShutdownCommand{}, 3, false, false},
		{"vote", &VoteCommand{ProposalID: "p"}, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bundle, err := manager.CreateBundle(ctx, secret, tc.cmd, tc.level)
			require.NoError(t, err)
			require.NotEmpty(t, bundle.ID)
			require.NotNil(t, bundle.AuthProof)
			require.Equal(t, tc.wantRange, bundle.RangeProof != nil)
			require.Equal(t, tc.wantQuery, bundle.QueryProof != nil)
			if tc.wantQuery {
				require.NotEmpty(t, bundle.QueryText)
			}
		})
	}
}

// TestVerifyBundle_Valid 测试完整证明包验证通过
func TestVerifyBundle_Valid(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x89)

	bundle, err := manager.CreateBundle(ctx, secret, &TransferCommand{To: "a", Amount: 100}, 2)
	require.NoError(t, err)
	require.True(t, manager.VerifyBundle(ctx, bundle, secret))

	// 授权和范围证明的验证不需要密钥
	require.True(t, manager.VerifyBundle(ctx, bundle, nil))
}

// TestVerifyBundle_QueryNeedsSecret 测试查询证明的重验需要密钥
func TestVerifyBundle_QueryNeedsSecret(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x90)

	bundle, err := manager.CreateBundle(ctx, secret, &QueryStateCommand{Height: 42}, 0)
	require.NoError(t, err)

	require.True(t, manager.VerifyBundle(ctx, bundle, secret))
	require.False(t, manager.VerifyBundle(ctx, bundle, nil))
	require.False(t, manager.VerifyBundle(ctx, bundle, testSecret(0x91)))
}

// TestVerifyBundle_UnderAuthorized 测试级别不足的证明包验证失败
func TestVerifyBundle_UnderAuthorized(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x92)

	bundle, err := manager.CreateBundle(ctx, secret, &ShutdownCommand{}, 1)
	require.NoError(t, err)
	require.NotEmpty(t, bundle.AuthProof.ProofBytes)
	require.False(t, manager.VerifyBundle(ctx, bundle, secret))

	// 同一转账命令：级别2通过，级别0产出证明字节但验证失败
	transfer := &TransferCommand{To: "a", Amount: 10}
	ok, err := manager.CreateBundle(ctx, testSecret(0x01), transfer, 2)
	require.NoError(t, err)
	require.True(t, manager.VerifyBundle(ctx, ok, nil))

	bad, err := manager.CreateBundle(ctx, testSecret(0x01), transfer, 0)
	require.NoError(t, err)
	require.NotEmpty(t, bad.AuthProof.ProofBytes)
	require.False(t, manager.VerifyBundle(ctx, bad, nil))
}

// TestVerifyBundle_TamperedQueryText 测试查询串篡改导致验证失败
func TestVerifyBundle_TamperedQueryText(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x93)

	bundle, err := manager.CreateBundle(ctx, secret, &QueryBalanceCommand{Account: "bob"}, 0)
	require.NoError(t, err)
	require.True(t, manager.VerifyBundle(ctx, bundle, secret))

	bundle.QueryText += " "
	require.False(t, manager.VerifyBundle(ctx, bundle, secret))
}

// TestVerifyBundle_AmountOverLimit 测试超过全局上限的金额无法生成证明包
func TestVerifyBundle_AmountOverLimit(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()

	_, err := manager.CreateBundle(ctx, testSecret(0x94),
		&TransferCommand{To: "a", Amount: manager.cfg.MaxBoundedAmount + 1}, 2)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAmountExceedsMax)
}

// unboundedTransferCommand 转账类别但未暴露受限金额的命令
type unboundedTransferCommand struct {
	To string `json:"to"`
}

func (c *unboundedTransferCommand) Kind() CommandKind { return KindTransfer }

// TestCreateBundle_TransferWithoutAmount 测试转账类别命令必须暴露受限金额
func TestCreateBundle_TransferWithoutAmount(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()

	_, err := manager.CreateBundle(ctx, testSecret(0x96), &unboundedTransferCommand{To: "a"}, 2)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrProving)
}

// TestVerifyBundle_Malformed 测试畸形证明包返回false
func TestVerifyBundle_Malformed(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()

	require.False(t, manager.VerifyBundle(ctx, nil, nil))
	require.False(t, manager.VerifyBundle(ctx, &ProofBundle{}, nil))
}

// TestBundle_UniqueIDs 测试证明包ID唯一
func TestBundle_UniqueIDs(t *testing.T) {
	manager := sharedManager(t)
	ctx := context.Background()
	secret := testSecret(0x95)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		bundle, err := manager.CreateBundle(ctx, secret, &VoteCommand{ProposalID: "p"}, 1)
		require.NoError(t, err)
		require.False(t, seen[bundle.ID])
		seen[bundle.ID] = true
	}
}
