// internal/dex/raydium/constants.go
package raydium

import (
	"github.com/gagliardetto/solana-go"
)

// Program IDs
var (
	TokenProgramID     = solana.MPK("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	RaydiumV4ProgramID = solana.MPK("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	SerumProgramID     = solana.MPK("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	WrappedSolMint     = solana.MPK("So11111111111111111111111111111111111111112")
)

// Instruction codes of the AMM program's swap interface. The payload encoding
// beyond these is owned by the AMM program; this module only supplies the two
// numeric parameters.
const (
	SwapBaseInInstruction  uint8 = 9
	SwapBaseOutInstruction uint8 = 11
)

// Compute budget constants
const (
	MaxComputeUnitLimit = 300000
	DefaultComputePrice = 1000
)
