// internal/dex/raydium/raydium.go
package raydium

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain"
	"github.com/rovshanmuradov/solana-composer/internal/dex"
	"github.com/rovshanmuradov/solana-composer/internal/transaction"
	"github.com/rovshanmuradov/solana-composer/internal/types"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// Client composes atomic AMM swaps: optional tip transfer plus one delegated
// swap call per invocation. Like the bonding-curve composer it keeps no state
// across calls.
type Client struct {
	client    blockchain.ChainClient
	wallet    *wallet.Wallet
	logger    *zap.Logger
	programID solana.PublicKey
	priority  *types.PriorityManager

	// TipAccount receives the incentive fee when a swap carries a tip.
	TipAccount solana.PublicKey
}

// NewClient creates a Raydium swap composer. An empty programID falls back to
// the mainnet V4 AMM program.
func NewClient(client blockchain.ChainClient, w *wallet.Wallet, logger *zap.Logger, programID, tipAccount solana.PublicKey) *Client {
	if programID.IsZero() {
		programID = RaydiumV4ProgramID
	}
	return &Client{
		client:     client,
		wallet:     w,
		logger:     logger.Named("raydium"),
		programID:  programID,
		priority:   types.NewPriorityManager(logger),
		TipAccount: tipAccount,
	}
}

// SwapExactIn executes a fixed-input swap: spend exactly params.AmountIn,
// receive at least params.MinAmountOut.
func (c *Client) SwapExactIn(ctx context.Context, params *SwapParams) (solana.Signature, error) {
	if params == nil {
		return solana.Signature{}, fmt.Errorf("swap params cannot be nil")
	}
	if params.AmountIn == 0 {
		return solana.Signature{}, fmt.Errorf("amount_in must be positive")
	}

	swapIx, err := BuildSwapBaseInInstruction(c.programID, params.Accounts, c.wallet.PublicKey, params.AmountIn, params.MinAmountOut)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build swap instruction: %w", err)
	}

	c.logger.Info("Executing swap exact-in",
		zap.String("amm", params.Accounts.Amm.String()),
		zap.Uint64("amount_in", params.AmountIn),
		zap.Uint64("min_amount_out", params.MinAmountOut),
		zap.Uint64("tip_lamports", params.TipLamports))

	return c.sendSwap(ctx, params, swapIx)
}

// SwapExactOut executes a fixed-output swap: receive exactly params.AmountOut,
// spend at most params.MaxAmountIn.
func (c *Client) SwapExactOut(ctx context.Context, params *SwapParams) (solana.Signature, error) {
	if params == nil {
		return solana.Signature{}, fmt.Errorf("swap params cannot be nil")
	}
	if params.AmountOut == 0 {
		return solana.Signature{}, fmt.Errorf("amount_out must be positive")
	}

	swapIx, err := BuildSwapBaseOutInstruction(c.programID, params.Accounts, c.wallet.PublicKey, params.MaxAmountIn, params.AmountOut)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build swap instruction: %w", err)
	}

	c.logger.Info("Executing swap exact-out",
		zap.String("amm", params.Accounts.Amm.String()),
		zap.Uint64("max_amount_in", params.MaxAmountIn),
		zap.Uint64("amount_out", params.AmountOut),
		zap.Uint64("tip_lamports", params.TipLamports))

	return c.sendSwap(ctx, params, swapIx)
}

// sendSwap assembles the atomic unit around the composed swap call:
// [priority fee] -> tip -> swap, then submits it.
func (c *Client) sendSwap(ctx context.Context, params *SwapParams, swapIx solana.Instruction) (solana.Signature, error) {
	var instructions []solana.Instruction

	if params.PriorityFeeMicroLamports > 0 {
		units := params.ComputeUnits
		if units == 0 {
			units = MaxComputeUnitLimit
		}
		priorityIxs, err := c.priority.CreateCustomPriorityInstructions(params.PriorityFeeMicroLamports, units)
		if err != nil {
			return solana.Signature{}, err
		}
		instructions = append(instructions, priorityIxs...)
	}

	tipIx, err := transaction.PrepareTipInstruction(ctx, c.client, c.wallet.PublicKey, c.TipAccount, params.TipLamports, c.logger)
	if err != nil {
		return solana.Signature{}, err
	}
	if tipIx != nil {
		instructions = append(instructions, tipIx)
	}

	instructions = append(instructions, swapIx)

	sig, err := transaction.SendAtomic(ctx, c.client, c.wallet, instructions, c.logger)
	if err != nil {
		if dex.IsSlippageExceededError(err) {
			return solana.Signature{}, &dex.SlippageExceededError{
				Amount:        params.AmountIn,
				OriginalError: err,
			}
		}
		if dex.IsInsufficientFundsError(err) {
			return solana.Signature{}, fmt.Errorf("%w: %v", dex.ErrInsufficientFunds, err)
		}
		return solana.Signature{}, err
	}

	c.logger.Info("Raydium swap confirmed", zap.String("tx", sig.String()))
	return sig, nil
}
