// ==============================================
// File: internal/dex/pumpfun/instructions.go
// ==============================================
package pumpfun

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// Instruction tags for the pump.fun program, little-endian u64 prefixes of the
// 24-byte call payload.
const (
	BuyInstructionTag  uint64 = 16927863322537952870
	SellInstructionTag uint64 = 12502976635542562355
)

// InstructionAccounts collects the foreign account references a buy or sell
// call is composed from.
type InstructionAccounts struct {
	Global                 solana.PublicKey
	FeeRecipient           solana.PublicKey
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	EventAuthority         solana.PublicKey
	Program                solana.PublicKey
}

// encodeTradeData builds the 24-byte payload: [tag][amount][bound], all
// little-endian. The layout must match the program's interface exactly; any
// deviation is rejected by the program, not detected here.
func encodeTradeData(tag, amount, bound uint64) []byte {
	data := make([]byte, 24)
	binary.LittleEndian.PutUint64(data[0:8], tag)
	binary.LittleEndian.PutUint64(data[8:16], amount)
	binary.LittleEndian.PutUint64(data[16:24], bound)
	return data
}

// VerifyKnownAccounts checks the configured global, fee and event-authority
// references against the well-known mainnet addresses when the config targets
// the mainnet program. This is tamper detection for the constant accounts;
// every other account is validated by the program at execution time.
func VerifyKnownAccounts(accounts InstructionAccounts) error {
	if !accounts.Program.Equals(PumpFunProgramID) {
		return nil
	}
	if !accounts.Global.Equals(PumpFunGlobal) {
		return fmt.Errorf("%w: global account %s", dex.ErrAccountMismatch, accounts.Global.String())
	}
	if !accounts.FeeRecipient.Equals(PumpFunFeeRecipient) {
		return fmt.Errorf("%w: fee recipient %s", dex.ErrAccountMismatch, accounts.FeeRecipient.String())
	}
	if !accounts.EventAuthority.Equals(PumpFunEventAuth) {
		return fmt.Errorf("%w: event authority %s", dex.ErrAccountMismatch, accounts.EventAuthority.String())
	}
	return nil
}

// BuildBuyTokenInstruction builds a buy instruction for the pump.fun program.
// amount is the native token amount to receive, maxSolCost the slippage-bound
// ceiling on the lamports spent.
func BuildBuyTokenInstruction(
	accounts InstructionAccounts,
	userWallet *wallet.Wallet,
	amount, maxSolCost uint64,
) (solana.Instruction, error) {
	if err := VerifyKnownAccounts(accounts); err != nil {
		return nil, err
	}

	associatedUser, err := userWallet.GetATA(accounts.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to get associated token account: %w", err)
	}

	// Account list must be in the exact order expected by the program
	insAccounts := []*solana.AccountMeta{
		{PublicKey: accounts.Global, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.FeeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: associatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: userWallet.PublicKey, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	data := encodeTradeData(BuyInstructionTag, amount, maxSolCost)
	return solana.NewInstruction(accounts.Program, insAccounts, data), nil
}

// BuildSellTokenInstruction builds a sell instruction for the pump.fun
// program. amount is the native token amount to sell, minSolOutput the
// slippage-bound floor on the lamports received.
func BuildSellTokenInstruction(
	accounts InstructionAccounts,
	userWallet *wallet.Wallet,
	amount, minSolOutput uint64,
) (solana.Instruction, error) {
	if err := VerifyKnownAccounts(accounts); err != nil {
		return nil, err
	}

	associatedUser, err := userWallet.GetATA(accounts.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to get associated token account: %w", err)
	}

	// Same shape as buy, with the rent sysvar replaced by the associated
	// token program reference.
	insAccounts := []*solana.AccountMeta{
		{PublicKey: accounts.Global, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.FeeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: associatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: userWallet.PublicKey, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.EventAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.Program, IsSigner: false, IsWritable: false},
	}

	data := encodeTradeData(SellInstructionTag, amount, minSolOutput)
	return solana.NewInstruction(accounts.Program, insAccounts, data), nil
}

// BuildCreateATAInstruction builds the create-associated-token-account call
// used when the buy path finds no holding account for the initiator. It uses
// the idempotent variant so a racing creation between the existence check and
// submission does not fail the transaction.
func BuildCreateATAInstruction(payer, associatedAddress, owner, mint solana.PublicKey) solana.Instruction {
	keys := []*solana.AccountMeta{
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: associatedAddress, IsSigner: false, IsWritable: true},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: mint, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(AssociatedTokenProgramID, keys, []byte{1})
}
