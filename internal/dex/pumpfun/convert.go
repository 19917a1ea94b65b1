// ==============================================
// File: internal/dex/pumpfun/convert.go
// ==============================================
package pumpfun

import (
	"fmt"
	"math"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
)

// SolToTokenAmount converts a SOL-denominated quantity into native token
// units at the given spot price: (amountSol / price) * 10^decimals, truncated
// toward zero. Truncation biases the computed amount downward; the buy-side
// slippage bound inflates the cost guard, so the directional guarantee holds.
func SolToTokenAmount(amountSol, price float64, decimals uint8) (uint64, error) {
	if math.IsNaN(amountSol) || math.IsInf(amountSol, 0) || amountSol < 0 {
		return 0, fmt.Errorf("invalid SOL amount: %f", amountSol)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price %f", dex.ErrInvalidPrice, price)
	}
	raw := (amountSol / price) * math.Pow10(int(decimals))
	if math.IsNaN(raw) || raw >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: token amount %f", dex.ErrArithmeticOverflow, raw)
	}
	return uint64(raw), nil
}

// SolToLamports converts a SOL quantity to lamports, truncating toward zero.
func SolToLamports(amountSol float64) (uint64, error) {
	if math.IsNaN(amountSol) || math.IsInf(amountSol, 0) || amountSol < 0 {
		return 0, fmt.Errorf("invalid SOL amount: %f", amountSol)
	}
	raw := amountSol * float64(LamportsPerSOL)
	if raw >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: lamport amount %f", dex.ErrArithmeticOverflow, raw)
	}
	return uint64(raw), nil
}

// ExpectedSolReceipt estimates the lamports received for selling tokenAmount
// native units at the given spot price. The lamport value is scaled first and
// truncated once so the floor is never coarser than one lamport.
func ExpectedSolReceipt(tokenAmount uint64, price float64) (uint64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, fmt.Errorf("%w: price %f", dex.ErrInvalidPrice, price)
	}
	wholeTokens := float64(tokenAmount) / math.Pow10(int(TokenDecimals))
	lamports := wholeTokens * price * float64(LamportsPerSOL)
	if math.IsNaN(lamports) || lamports >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: receipt %f", dex.ErrArithmeticOverflow, lamports)
	}
	return uint64(lamports), nil
}
