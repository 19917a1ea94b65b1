// ==============================================
// File: internal/dex/pumpfun/pumpfun.go
// ==============================================

package pumpfun

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/blockchain"
	"github.com/rovshanmuradov/solana-composer/internal/dex"
	"github.com/rovshanmuradov/solana-composer/internal/dex/model"
	"github.com/rovshanmuradov/solana-composer/internal/transaction"
	"github.com/rovshanmuradov/solana-composer/internal/types"
	"github.com/rovshanmuradov/solana-composer/internal/wallet"
)

// DEX composes atomic bonding-curve trades: tip transfer, holding-account
// creation when absent, and the buy or sell call itself, all in one
// transaction. It holds no state across calls; every Execute* invocation is a
// self-contained pipeline.
type DEX struct {
	client   blockchain.ChainClient
	wallet   *wallet.Wallet
	logger   *zap.Logger
	config   *Config
	priority *types.PriorityManager

	// TipAccount receives the incentive fee when a trade carries a tip.
	TipAccount solana.PublicKey

	// PriorityFeeMicroLamports enables the compute-budget stage when > 0.
	PriorityFeeMicroLamports uint64
	ComputeUnits             uint32
}

// NewDEX creates a pump.fun trade composer.
func NewDEX(client blockchain.ChainClient, w *wallet.Wallet, logger *zap.Logger, config *Config, tipAccount solana.PublicKey) (*DEX, error) {
	if config.ContractAddress.IsZero() {
		return nil, fmt.Errorf("pump.fun contract address is required")
	}
	if config.Mint.IsZero() {
		return nil, fmt.Errorf("token mint address is required")
	}
	if config.BondingCurve.IsZero() {
		return nil, fmt.Errorf("bonding curve address is required")
	}

	logger.Info("Creating PumpFun composer",
		zap.String("contract", config.ContractAddress.String()),
		zap.String("token_mint", config.Mint.String()),
		zap.String("bonding_curve", config.BondingCurve.String()))

	return &DEX{
		client:     client,
		wallet:     w,
		logger:     logger.Named("pumpfun"),
		config:     config,
		priority:   types.NewPriorityManager(logger),
		TipAccount: tipAccount,
	}, nil
}

// instructionAccounts assembles the per-trade account references from config.
func (d *DEX) instructionAccounts() InstructionAccounts {
	return InstructionAccounts{
		Global:                 d.config.Global,
		FeeRecipient:           d.config.FeeRecipient,
		Mint:                   d.config.Mint,
		BondingCurve:           d.config.BondingCurve,
		AssociatedBondingCurve: d.config.AssociatedBondingCurve,
		EventAuthority:         d.config.EventAuthority,
		Program:                d.config.ContractAddress,
	}
}

// ExecuteBuy runs the full buy pipeline for amountSol SOL with the given
// slippage fraction and optional tip. Stages run in strict order: tip, holding
// account check, curve read, conversion, bound, compose, invoke. Any failure
// aborts the whole call with nothing applied.
func (d *DEX) ExecuteBuy(ctx context.Context, amountSol, slippage float64, tipLamports uint64) (solana.Signature, error) {
	instructions, err := d.prepareBuyInstructions(ctx, amountSol, slippage, tipLamports)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := transaction.SendAtomic(ctx, d.client, d.wallet, instructions, d.logger)
	if err != nil {
		return solana.Signature{}, d.classifyTradeError(err, slippage)
	}

	d.logger.Info("Pump.fun buy confirmed", zap.String("tx", sig.String()))
	return sig, nil
}

// priorityInstructions builds the optional compute-budget stage.
func (d *DEX) priorityInstructions() ([]solana.Instruction, error) {
	if d.PriorityFeeMicroLamports == 0 {
		return nil, nil
	}
	return d.priority.CreateCustomPriorityInstructions(d.PriorityFeeMicroLamports, d.ComputeUnits)
}

func (d *DEX) prepareBuyInstructions(ctx context.Context, amountSol, slippage float64, tipLamports uint64) ([]solana.Instruction, error) {
	instructions, err := d.priorityInstructions()
	if err != nil {
		return nil, err
	}

	// Incentive-fee stage. Ordered strictly before everything else; an
	// insufficient balance aborts here, before any composition work.
	tipIx, err := transaction.PrepareTipInstruction(ctx, d.client, d.wallet.PublicKey, d.TipAccount, tipLamports, d.logger)
	if err != nil {
		return nil, err
	}
	if tipIx != nil {
		instructions = append(instructions, tipIx)
	}

	userATA, err := d.wallet.GetATA(d.config.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive holding account: %w", err)
	}

	state, ataExists, err := d.buyPreflight(ctx, d.config.BondingCurve, userATA)
	if err != nil {
		return nil, err
	}

	// Buy-only precondition: create the holding account inside the same
	// atomic unit when it does not exist yet.
	if !ataExists {
		d.logger.Debug("Holding account absent, scheduling creation",
			zap.String("user_ata", userATA.String()))
		instructions = append(instructions,
			BuildCreateATAInstruction(d.wallet.PublicKey, userATA, d.wallet.PublicKey, d.config.Mint))
	}

	price, err := state.Price()
	if err != nil {
		return nil, err
	}

	tokenAmount, err := SolToTokenAmount(amountSol, price, TokenDecimals)
	if err != nil {
		return nil, err
	}

	costLamports, err := SolToLamports(amountSol)
	if err != nil {
		return nil, err
	}

	maxSolCost, err := types.MaxCost(costLamports, slippage)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Calculated buy parameters",
		zap.Float64("amount_sol", amountSol),
		zap.Float64("token_price", price),
		zap.Uint64("token_amount", tokenAmount),
		zap.Uint64("max_sol_cost", maxSolCost))

	buyIx, err := BuildBuyTokenInstruction(d.instructionAccounts(), d.wallet, tokenAmount, maxSolCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build buy instruction: %w", err)
	}

	return append(instructions, buyIx), nil
}

// ExecuteSell runs the sell pipeline for tokenAmount native units. The sell
// path assumes the holding account exists (the initiator must hold the asset
// to sell it) and does not attempt creation.
func (d *DEX) ExecuteSell(ctx context.Context, tokenAmount uint64, slippage float64, tipLamports uint64) (solana.Signature, error) {
	instructions, err := d.prepareSellInstructions(ctx, tokenAmount, slippage, tipLamports)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := transaction.SendAtomic(ctx, d.client, d.wallet, instructions, d.logger)
	if err != nil {
		return solana.Signature{}, d.classifyTradeError(err, slippage)
	}

	d.logger.Info("Pump.fun sell confirmed", zap.String("tx", sig.String()))
	return sig, nil
}

func (d *DEX) prepareSellInstructions(ctx context.Context, tokenAmount uint64, slippage float64, tipLamports uint64) ([]solana.Instruction, error) {
	instructions, err := d.priorityInstructions()
	if err != nil {
		return nil, err
	}

	tipIx, err := transaction.PrepareTipInstruction(ctx, d.client, d.wallet.PublicKey, d.TipAccount, tipLamports, d.logger)
	if err != nil {
		return nil, err
	}
	if tipIx != nil {
		instructions = append(instructions, tipIx)
	}

	// Balance sanity check before any composition. A failed read is advisory
	// only; a confirmed shortfall is terminal.
	if balance, err := d.GetTokenBalance(ctx); err != nil {
		d.logger.Warn("Could not verify token balance before sell", zap.Error(err))
	} else if balance < tokenAmount {
		return nil, fmt.Errorf("%w: holding %d native units, selling %d",
			dex.ErrInsufficientFunds, balance, tokenAmount)
	}

	state, err := d.FetchBondingCurveState(ctx, d.config.BondingCurve)
	if err != nil {
		return nil, err
	}
	if state.Complete {
		return nil, fmt.Errorf("%w: token %s has graduated", dex.ErrCurveComplete, d.config.Mint.String())
	}

	price, err := state.Price()
	if err != nil {
		return nil, err
	}

	expectedLamports, err := ExpectedSolReceipt(tokenAmount, price)
	if err != nil {
		return nil, err
	}

	minSolOutput, err := types.MinReceipt(expectedLamports, slippage)
	if err != nil {
		return nil, err
	}

	estimate := model.NewTokenEstimate(d.config.Mint.String(), tokenAmount, price, TokenDecimals)
	d.logger.Info("Calculated sell parameters",
		zap.Uint64("token_amount", tokenAmount),
		zap.Float64("token_price", price),
		zap.String("estimated_sol", estimate.EstimatedSol.String()),
		zap.Uint64("expected_lamports", expectedLamports),
		zap.Uint64("min_sol_output", minSolOutput))

	sellIx, err := BuildSellTokenInstruction(d.instructionAccounts(), d.wallet, tokenAmount, minSolOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to build sell instruction: %w", err)
	}

	return append(instructions, sellIx), nil
}

// classifyTradeError maps collaborator rejections onto the module's error
// taxonomy without reinterpreting them.
func (d *DEX) classifyTradeError(err error, slippage float64) error {
	if dex.IsSlippageExceededError(err) {
		d.logger.Warn("Trade rejected: price moved past the computed bound",
			zap.Float64("slippage", slippage),
			zap.Error(err))
		return &dex.SlippageExceededError{
			SlippageFraction: slippage,
			OriginalError:    err,
		}
	}
	if dex.IsInsufficientFundsError(err) {
		return fmt.Errorf("%w: %v", dex.ErrInsufficientFunds, err)
	}
	return err
}
