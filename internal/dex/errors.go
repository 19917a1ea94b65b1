// =============================
// File: internal/dex/errors.go
// =============================
package dex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error taxonomy for the trade pipeline. Every error here is terminal for the
// call: no stage retries, the caller resubmits as a new call.
var (
	// ErrMalformedAccount — curve account buffer too short or wrong discriminator.
	ErrMalformedAccount = errors.New("malformed curve account")

	// ErrInvalidPrice — zero virtual reserves, price cannot be computed.
	ErrInvalidPrice = errors.New("invalid price: zero virtual reserves")

	// ErrArithmeticOverflow — amount or bound computation exceeds uint64.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInsufficientFunds — payer cannot cover the tip or the trade itself.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPreconditionFailed — token-holding account creation failed.
	ErrPreconditionFailed = errors.New("holding account precondition failed")

	// ErrAccountMismatch — a composed account reference does not match the
	// configured constant address (tamper detection, not business logic).
	ErrAccountMismatch = errors.New("account reference mismatch")

	// ErrCurveComplete — the bonding curve has graduated; trades must go
	// through the AMM engine instead.
	ErrCurveComplete = errors.New("bonding curve complete")
)

// Pump.fun custom error codes surfaced when the live price moves past the bound.
const (
	SlippageExceededBuyCode     = "0x1772" // TooMuchSolRequired
	SlippageExceededSellCode    = "0x1773" // TooLittleSolReceived
	SlippageExceededBuyCodeInt  = 6002
	SlippageExceededSellCodeInt = 6003
)

// SlippageExceededError wraps a collaborator-side rejection of the computed
// bound. It is surfaced verbatim, never reinterpreted into a retry.
type SlippageExceededError struct {
	SlippageFraction float64
	Amount           uint64
	OriginalError    error
}

func (e *SlippageExceededError) Error() string {
	return fmt.Sprintf("slippage exceeded: live price moved past the computed bound (tolerance %.4f): %v",
		e.SlippageFraction, e.OriginalError)
}

func (e *SlippageExceededError) Unwrap() error {
	return e.OriginalError
}

// IsSlippageExceededError detects a slippage rejection in an RPC error.
func IsSlippageExceededError(err error) bool {
	if err == nil {
		return false
	}
	var se *SlippageExceededError
	if errors.As(err, &se) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "TooMuchSolRequired") ||
		strings.Contains(msg, "TooLittleSolReceived") ||
		strings.Contains(msg, "ExceededSlippage") ||
		strings.Contains(msg, SlippageExceededBuyCode) ||
		strings.Contains(msg, SlippageExceededSellCode) ||
		strings.Contains(msg, strconv.Itoa(SlippageExceededBuyCodeInt)) ||
		strings.Contains(msg, strconv.Itoa(SlippageExceededSellCodeInt))
}

// IsInsufficientFundsError detects an insufficient-funds rejection in an RPC error.
func IsInsufficientFundsError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInsufficientFunds) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "insufficient funds") ||
		strings.Contains(msg, "insufficient lamports")
}
