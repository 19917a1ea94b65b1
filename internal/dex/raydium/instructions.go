// internal/dex/raydium/instructions.go
package raydium

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// encodeSwapData builds the AMM swap payload: one instruction-code byte
// followed by the two u64 parameters, little-endian.
func encodeSwapData(code uint8, a, b uint64) []byte {
	data := make([]byte, 1+8+8)
	data[0] = code
	binary.LittleEndian.PutUint64(data[1:9], a)
	binary.LittleEndian.PutUint64(data[9:17], b)
	return data
}

// swapAccountMetas lays out the account list in the exact order the AMM
// program's swap interface expects.
func swapAccountMetas(accounts PoolAccounts, userOwner solana.PublicKey) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Amm, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AmmAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.AmmOpenOrders, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AmmCoinVault, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AmmPcVault, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketProgram, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Market, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketBids, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketAsks, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketEventQueue, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketCoinVault, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketPcVault, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.MarketVaultSigner, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.UserSourceToken, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.UserDestinationToken, IsSigner: false, IsWritable: true},
		{PublicKey: userOwner, IsSigner: true, IsWritable: true},
	}
}

// BuildSwapBaseInInstruction composes a fixed-input swap: spend exactly
// amountIn, receive at least minAmountOut.
func BuildSwapBaseInInstruction(
	programID solana.PublicKey,
	accounts PoolAccounts,
	userOwner solana.PublicKey,
	amountIn, minAmountOut uint64,
) (solana.Instruction, error) {
	if err := accounts.Validate(); err != nil {
		return nil, err
	}
	data := encodeSwapData(SwapBaseInInstruction, amountIn, minAmountOut)
	return solana.NewInstruction(programID, swapAccountMetas(accounts, userOwner), data), nil
}

// BuildSwapBaseOutInstruction composes a fixed-output swap: receive exactly
// amountOut, spend at most maxAmountIn.
func BuildSwapBaseOutInstruction(
	programID solana.PublicKey,
	accounts PoolAccounts,
	userOwner solana.PublicKey,
	maxAmountIn, amountOut uint64,
) (solana.Instruction, error) {
	if err := accounts.Validate(); err != nil {
		return nil, err
	}
	data := encodeSwapData(SwapBaseOutInstruction, maxAmountIn, amountOut)
	return solana.NewInstruction(programID, swapAccountMetas(accounts, userOwner), data), nil
}
