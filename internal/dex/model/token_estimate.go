// internal/dex/model/token_estimate.go
package model

import (
	"github.com/shopspring/decimal"
)

// TokenEstimate is a decimal-exact valuation of a token position in SOL.
// It is advisory output for logs and quotes; the slippage bound computation
// stays in the float semantics the engines settle against.
type TokenEstimate struct {
	// TokenMint is the mint address of the valued token
	TokenMint string

	// TokenBalance is the position size in native units
	TokenBalance uint64

	// TokenPrice is the spot price in SOL per whole token
	TokenPrice float64

	// EstimatedSol is the exact-decimal valuation in SOL
	EstimatedSol decimal.Decimal
}

// NewTokenEstimate values balance native units at price SOL per whole token,
// with decimals giving the native unit scale of the mint.
func NewTokenEstimate(mint string, balance uint64, price float64, decimals uint8) *TokenEstimate {
	wholeTokens := decimal.NewFromUint64(balance).Shift(-int32(decimals))
	estimated := wholeTokens.Mul(decimal.NewFromFloat(price))

	return &TokenEstimate{
		TokenMint:    mint,
		TokenBalance: balance,
		TokenPrice:   price,
		EstimatedSol: estimated,
	}
}

// Lamports returns the valuation in the ledger's smallest unit, truncated.
func (e *TokenEstimate) Lamports() uint64 {
	lamports := e.EstimatedSol.Shift(9).Truncate(0)
	if lamports.Sign() <= 0 {
		return 0
	}
	return lamports.BigInt().Uint64()
}
