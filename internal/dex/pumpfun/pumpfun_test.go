// ==============================================
// File: internal/dex/pumpfun/pumpfun_test.go
// ==============================================
package pumpfun

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
)

// tokenBalance wraps a raw balance the way the RPC layer reports it.
func tokenBalance(amount string) *rpc.GetTokenAccountBalanceResult {
	return &rpc.GetTokenAccountBalanceResult{
		Value: &rpc.UiTokenAmount{Amount: amount},
	}
}

// liquidCurve is the reserve snapshot used across the pipeline tests:
// 1,000,000 whole tokens of virtual base against 30 SOL of virtual quote,
// a spot price of 0.00003 SOL per token.
func liquidCurve() []byte {
	return encodeCurveAccount(BondingCurveDiscriminator, BondingCurveState{
		VirtualTokenReserves: 1_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		RealTokenReserves:    800_000_000_000,
		RealSolReserves:      12_000_000_000,
		TokenTotalSupply:     1_000_000_000_000,
	})
}

func TestPrepareBuyInstructions_CreatesHoldingAccount(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	userATA, err := d.wallet.GetATA(d.config.Mint)
	require.NoError(t, err)

	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, liquidCurve()), nil)
	mc.On("GetAccountInfo", mock.Anything, userATA).Return(nil, nil)

	instructions, err := d.prepareBuyInstructions(context.Background(), 1.0, 0.01, 0)
	require.NoError(t, err)
	require.Len(t, instructions, 2)

	// Holding account creation precedes the trade call in the same unit.
	assert.Equal(t, AssociatedTokenProgramID, instructions[0].ProgramID())
	assert.Equal(t, d.config.ContractAddress, instructions[1].ProgramID())

	data, err := instructions[1].Data()
	require.NoError(t, err)
	require.Len(t, data, 24)
	assert.Equal(t, BuyInstructionTag, binary.LittleEndian.Uint64(data[0:8]))
	assert.Equal(t, uint64(33_333_333_333), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(1_010_000_000), binary.LittleEndian.Uint64(data[16:24]))
}

func TestPrepareBuyInstructions_ExistingHoldingAccount(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	userATA, err := d.wallet.GetATA(d.config.Mint)
	require.NoError(t, err)

	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, liquidCurve()), nil)
	mc.On("GetAccountInfo", mock.Anything, userATA).Return(accountInfoWithData(t, make([]byte, 165)), nil)

	instructions, err := d.prepareBuyInstructions(context.Background(), 1.0, 0.01, 0)
	require.NoError(t, err)

	// No creation step and, with a zero tip, no transfer either.
	require.Len(t, instructions, 1)
	assert.Equal(t, d.config.ContractAddress, instructions[0].ProgramID())
}

func TestPrepareBuyInstructions_WithTip(t *testing.T) {
	mc := new(MockChainClient)
	tipAccount := solana.NewWallet().PublicKey()
	d := newTestDEX(t, mc, tipAccount)

	userATA, err := d.wallet.GetATA(d.config.Mint)
	require.NoError(t, err)

	mc.On("GetBalance", mock.Anything, d.wallet.PublicKey).Return(uint64(1_000_000_000), nil)
	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, liquidCurve()), nil)
	mc.On("GetAccountInfo", mock.Anything, userATA).Return(accountInfoWithData(t, make([]byte, 165)), nil)

	instructions, err := d.prepareBuyInstructions(context.Background(), 0.5, 0.01, 5_000)
	require.NoError(t, err)
	require.Len(t, instructions, 2)

	// The transfer sits strictly before the trade call.
	assert.Equal(t, solana.SystemProgramID, instructions[0].ProgramID())
	assert.Equal(t, d.config.ContractAddress, instructions[1].ProgramID())
}

func TestPrepareBuyInstructions_WithPriorityFee(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})
	d.PriorityFeeMicroLamports = 10_000
	d.ComputeUnits = 200_000

	userATA, err := d.wallet.GetATA(d.config.Mint)
	require.NoError(t, err)

	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, liquidCurve()), nil)
	mc.On("GetAccountInfo", mock.Anything, userATA).Return(accountInfoWithData(t, make([]byte, 165)), nil)

	instructions, err := d.prepareBuyInstructions(context.Background(), 1.0, 0.01, 0)
	require.NoError(t, err)

	// Compute-budget limit and price precede the trade call.
	require.Len(t, instructions, 3)
	assert.Equal(t, computebudget.ProgramID, instructions[0].ProgramID())
	assert.Equal(t, computebudget.ProgramID, instructions[1].ProgramID())
	assert.Equal(t, d.config.ContractAddress, instructions[2].ProgramID())
}

func TestPrepareBuyInstructions_InsufficientTipBalance(t *testing.T) {
	mc := new(MockChainClient)
	tipAccount := solana.NewWallet().PublicKey()
	d := newTestDEX(t, mc, tipAccount)

	mc.On("GetBalance", mock.Anything, d.wallet.PublicKey).Return(uint64(1_000), nil)

	_, err := d.prepareBuyInstructions(context.Background(), 1.0, 0.01, 5_000)
	assert.ErrorIs(t, err, dex.ErrInsufficientFunds)

	// The failure happens before any account reads or composition work.
	mc.AssertNotCalled(t, "GetAccountInfo", mock.Anything, mock.Anything)
}

func TestPrepareSellInstructions(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	mc.On("GetTokenAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(tokenBalance("33333333333"), nil)
	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, liquidCurve()), nil)

	instructions, err := d.prepareSellInstructions(context.Background(), 33_333_333_333, 0.01, 0)
	require.NoError(t, err)
	require.Len(t, instructions, 1)

	data, err := instructions[0].Data()
	require.NoError(t, err)
	require.Len(t, data, 24)
	assert.Equal(t, SellInstructionTag, binary.LittleEndian.Uint64(data[0:8]))
	assert.Equal(t, uint64(33_333_333_333), binary.LittleEndian.Uint64(data[8:16]))

	// Expected receipt 0.999999999 SOL, floored by the 1% tolerance.
	assert.Equal(t, uint64(989_999_999), binary.LittleEndian.Uint64(data[16:24]))
}

func TestPrepareSellInstructions_GraduatedCurve(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	graduated := encodeCurveAccount(BondingCurveDiscriminator, BondingCurveState{
		VirtualTokenReserves: 1_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		Complete:             true,
	})
	mc.On("GetTokenAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(tokenBalance("1000000"), nil)
	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, graduated), nil)

	_, err := d.prepareSellInstructions(context.Background(), 1_000_000, 0.01, 0)
	assert.ErrorIs(t, err, dex.ErrCurveComplete)
}

func TestPrepareSellInstructions_MalformedCurveAccount(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	// A failed balance read is advisory; the malformed curve is what aborts.
	mc.On("GetTokenAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("rpc unavailable"))
	mc.On("GetAccountInfo", mock.Anything, d.config.BondingCurve).Return(accountInfoWithData(t, []byte{1, 2, 3}), nil)

	_, err := d.prepareSellInstructions(context.Background(), 1_000_000, 0.01, 0)
	assert.ErrorIs(t, err, dex.ErrMalformedAccount)
}

func TestPrepareSellInstructions_InsufficientTokenBalance(t *testing.T) {
	mc := new(MockChainClient)
	d := newTestDEX(t, mc, solana.PublicKey{})

	mc.On("GetTokenAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(tokenBalance("1000"), nil)

	_, err := d.prepareSellInstructions(context.Background(), 1_000_000, 0.01, 0)
	assert.ErrorIs(t, err, dex.ErrInsufficientFunds)

	// The shortfall is detected before the curve is ever read.
	mc.AssertNotCalled(t, "GetAccountInfo", mock.Anything, mock.Anything)
}
