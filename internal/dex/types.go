// ==========================================
// File: internal/dex/types.go
// ==========================================
package dex

import "fmt"

// OperationType defines a trade operation.
type OperationType string

const (
	// OperationBuy buys on the bonding curve for a SOL-denominated amount.
	OperationBuy OperationType = "buy"
	// OperationSell sells native token units on the bonding curve.
	OperationSell OperationType = "sell"
	// OperationSwapIn is a fixed-input AMM swap.
	OperationSwapIn OperationType = "swap_in"
	// OperationSwapOut is a fixed-output AMM swap.
	OperationSwapOut OperationType = "swap_out"
)

// Task is the caller-supplied trade intent. Which fields matter depends on
// the operation; Validate enforces the per-operation shape.
type Task struct {
	Operation OperationType
	TokenMint string

	// Bonding curve buy: SOL to spend
	AmountSol float64
	// Bonding curve sell: native token units to sell
	TokenAmount uint64
	// Curve trades: tolerated price movement as a fraction in [0, 1]
	Slippage float64

	// AMM exact-in
	AmountIn     uint64
	MinAmountOut uint64
	// AMM exact-out
	MaxAmountIn uint64
	AmountOut   uint64

	// Optional incentive fee; zero disables the tip stage
	TipLamports uint64
}

// Validate checks the task's shape for its operation.
func (t *Task) Validate() error {
	switch t.Operation {
	case OperationBuy:
		if t.AmountSol <= 0 {
			return fmt.Errorf("buy requires a positive SOL amount")
		}
		if t.Slippage < 0 || t.Slippage > 1 {
			return fmt.Errorf("slippage fraction must be in [0, 1], got %f", t.Slippage)
		}
	case OperationSell:
		if t.TokenAmount == 0 {
			return fmt.Errorf("sell requires a positive token amount")
		}
		if t.Slippage < 0 || t.Slippage > 1 {
			return fmt.Errorf("slippage fraction must be in [0, 1], got %f", t.Slippage)
		}
	case OperationSwapIn:
		if t.AmountIn == 0 {
			return fmt.Errorf("swap_in requires a positive amount_in")
		}
	case OperationSwapOut:
		if t.AmountOut == 0 {
			return fmt.Errorf("swap_out requires a positive amount_out")
		}
	default:
		return fmt.Errorf("unknown operation: %s", t.Operation)
	}
	return nil
}
