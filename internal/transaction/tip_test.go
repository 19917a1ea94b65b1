// internal/transaction/tip_test.go
package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
)

func TestPrepareTipInstruction(t *testing.T) {
	mc := new(MockChainClient)
	payer := solana.NewWallet().PublicKey()
	tipAccount := solana.NewWallet().PublicKey()

	mc.On("GetBalance", mock.Anything, payer).Return(uint64(10_000_000), nil)

	ix, err := PrepareTipInstruction(context.Background(), mc, payer, tipAccount, 5_000, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, ix)
	assert.Equal(t, solana.SystemProgramID, ix.ProgramID())

	metas := ix.Accounts()
	require.Len(t, metas, 2)
	assert.Equal(t, payer, metas[0].PublicKey)
	assert.True(t, metas[0].IsSigner)
	assert.Equal(t, tipAccount, metas[1].PublicKey)
}

func TestPrepareTipInstruction_ZeroTipIsNoOp(t *testing.T) {
	mc := new(MockChainClient)
	payer := solana.NewWallet().PublicKey()
	tipAccount := solana.NewWallet().PublicKey()

	ix, err := PrepareTipInstruction(context.Background(), mc, payer, tipAccount, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, ix)

	// Disabled stage touches nothing.
	mc.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
}

func TestPrepareTipInstruction_MissingTipAccount(t *testing.T) {
	mc := new(MockChainClient)
	payer := solana.NewWallet().PublicKey()

	_, err := PrepareTipInstruction(context.Background(), mc, payer, solana.PublicKey{}, 5_000, zap.NewNop())
	assert.Error(t, err)
}

func TestPrepareTipInstruction_InsufficientBalance(t *testing.T) {
	mc := new(MockChainClient)
	payer := solana.NewWallet().PublicKey()
	tipAccount := solana.NewWallet().PublicKey()

	mc.On("GetBalance", mock.Anything, payer).Return(uint64(1_000), nil)

	_, err := PrepareTipInstruction(context.Background(), mc, payer, tipAccount, 5_000, zap.NewNop())
	assert.ErrorIs(t, err, dex.ErrInsufficientFunds)
}

func TestPrepareTipInstruction_BalanceCheckFailure(t *testing.T) {
	mc := new(MockChainClient)
	payer := solana.NewWallet().PublicKey()
	tipAccount := solana.NewWallet().PublicKey()

	mc.On("GetBalance", mock.Anything, payer).Return(uint64(0), errors.New("rpc unavailable"))

	_, err := PrepareTipInstruction(context.Background(), mc, payer, tipAccount, 5_000, zap.NewNop())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, dex.ErrInsufficientFunds)
}
