// internal/types/slippage.go
package types

import (
	"fmt"
	"math"
)

// MaxCost computes the buy-side guard value: the most lamports the initiator
// will spend for the requested amount. For any slippage >= 0 the bound is
// >= cost, with equality at slippage = 0.
func MaxCost(costLamports uint64, slippage float64) (uint64, error) {
	if err := validateSlippage(slippage); err != nil {
		return 0, err
	}
	bound := float64(costLamports) * (1.0 + slippage)
	if bound >= math.MaxUint64 {
		return 0, fmt.Errorf("max cost bound overflows uint64: cost=%d slippage=%f", costLamports, slippage)
	}
	ceiling := uint64(bound)
	// Costs past 2^53 lose float precision; the ceiling must still cover
	// the nominal cost.
	if ceiling < costLamports {
		ceiling = costLamports
	}
	return ceiling, nil
}

// MinReceipt computes the sell-side guard value: the fewest lamports the
// initiator will accept for the expected receipt. The result is truncated, so
// the bound is <= receipt for any slippage >= 0, with equality at slippage = 0.
// Slippage >= 1 collapses the floor to zero; that is a deliberate opt-in to
// unconditional execution, not an error.
func MinReceipt(receiptLamports uint64, slippage float64) (uint64, error) {
	if err := validateSlippage(slippage); err != nil {
		return 0, err
	}
	bound := float64(receiptLamports) * (1.0 - slippage)
	if bound <= 0 {
		return 0, nil
	}
	floor := uint64(bound)
	// Mirror of the ceiling clamp: float rounding on receipts past 2^53 must
	// not lift the floor above the expected receipt.
	if floor > receiptLamports {
		floor = receiptLamports
	}
	return floor, nil
}

func validateSlippage(slippage float64) error {
	if math.IsNaN(slippage) || math.IsInf(slippage, 0) || slippage < 0 {
		return fmt.Errorf("invalid slippage fraction: %f", slippage)
	}
	return nil
}
